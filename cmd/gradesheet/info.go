package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	infoRowHomework = iota
	infoRowGroup
	infoRowStudent
	infoRowVariantCount
	infoRowVariantOverride
	infoRowCount
)

func (a app) updateInfo(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < infoRowCount-1 {
			a.cursor++
		}
	case "left", "h":
		a.cycleInfoRow(-1)
	case "right", "l":
		a.cycleInfoRow(1)
	case "enter":
		switch a.cursor {
		case infoRowVariantCount:
			a.focus = focusVariantCount
			return a, a.variantCount.Focus()
		case infoRowVariantOverride:
			a.focus = focusVariantOverride
			return a, a.variantOverride.Focus()
		}
	}
	return a, nil
}

func (a *app) cycleInfoRow(delta int) {
	switch a.cursor {
	case infoRowHomework:
		if len(a.homeworks) == 0 {
			return
		}
		a.homeworkIdx = (a.homeworkIdx + delta + len(a.homeworks)) % len(a.homeworks)
		a.onStudentChanged()
	case infoRowGroup:
		if len(a.groups) == 0 {
			return
		}
		a.groupIdx = (a.groupIdx + delta + len(a.groups)) % len(a.groups)
		a.students = a.roster.InGroup(a.currentGroup())
		a.studentIdx = 0
		a.onStudentChanged()
	case infoRowStudent:
		a.moveStudent(delta)
	}
}

func (a app) viewInfo() string {
	var sb strings.Builder

	row := func(idx int, label, value string) {
		marker := "  "
		if a.cursor == idx {
			marker = cursorStyle.Render("> ")
		}
		sb.WriteString(fmt.Sprintf("%s%-18s %s\n", marker, label+":", value))
	}

	homework := a.currentHomework()
	if homework == "" {
		homework = dimStyle.Render("(no criteria loaded)")
	}
	row(infoRowHomework, "Homework", homework)

	group := a.currentGroup()
	if group == "" {
		group = dimStyle.Render("(no roster loaded)")
	}
	row(infoRowGroup, "Group", group)

	studentLabel := dimStyle.Render("(none)")
	if student, ok := a.currentStudent(); ok {
		studentLabel = fmt.Sprintf("%s  (%d of %d)",
			student.FullName, a.studentIdx+1, len(a.students))
	}
	row(infoRowStudent, "Student", studentLabel)

	row(infoRowVariantCount, "Variant count", a.variantCount.View())
	row(infoRowVariantOverride, "Variant override", a.variantOverride.View())

	variant, serr := a.currentVariant()
	if serr == nil {
		sb.WriteString(fmt.Sprintf("\n  Assigned variant: %s\n", headerStyle.Render(variant)))
	}

	sb.WriteString(dimStyle.Render(
		"\n  left/right: change value  enter: edit field  ctrl+n/ctrl+p: next/prev student\n"))
	return sb.String()
}
