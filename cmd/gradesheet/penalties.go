package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Fixed rows appended after the penalty and reward toggles.
const (
	penRowOnTime = iota
	penRowDelay
	penRowDouble
	penRowLimitEight
	penRowComment
	penFixedRowCount
)

func (a *app) penaltiesRowCount() int {
	return len(a.rubric.Penalties) + len(a.rubric.Rewards) + penFixedRowCount
}

func (a *app) penaltiesFixedRow() int {
	return a.cursor - len(a.rubric.Penalties) - len(a.rubric.Rewards)
}

func (a app) updatePenalties(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	total := a.penaltiesRowCount()
	if a.cursor >= total {
		a.cursor = total - 1
	}

	switch msg.String() {
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < total-1 {
			a.cursor++
		}
	case "enter", " ":
		return a.activatePenaltiesRow()
	}
	return a, nil
}

func (a app) activatePenaltiesRow() (tea.Model, tea.Cmd) {
	pCount := len(a.rubric.Penalties)
	rCount := len(a.rubric.Rewards)

	switch {
	case a.cursor < pCount:
		a.sel.Penalties[a.cursor] = !a.sel.Penalties[a.cursor]
	case a.cursor < pCount+rCount:
		i := a.cursor - pCount
		a.sel.Rewards[i] = !a.sel.Rewards[i]
	default:
		switch a.penaltiesFixedRow() {
		case penRowOnTime:
			a.sel.SetOnTime(!a.sel.OnTime)
			a.syncInputs()
		case penRowDelay:
			a.focus = focusDelay
			return a, a.delay.Focus()
		case penRowDouble:
			a.sel.SetDoubleMode(!a.sel.DoubleMode)
			a.refreshSections()
		case penRowLimitEight:
			if !a.sel.DoubleMode {
				a.setStatus("the 8-point cap is fixed unless double grading mode is on")
				return a, nil
			}
			a.sel.LimitToEight = !a.sel.LimitToEight
			a.refreshSections()
		case penRowComment:
			a.focus = focusComment
			return a, a.comment.Focus()
		}
	}
	return a, nil
}

func (a app) viewPenalties() string {
	var sb strings.Builder

	marker := func(idx int) string {
		if a.cursor == idx {
			return cursorStyle.Render("> ")
		}
		return "  "
	}
	box := func(on bool) string {
		if on {
			return "[x]"
		}
		return "[ ]"
	}

	sb.WriteString(headerStyle.Render("  Penalties") + "\n")
	if len(a.rubric.Penalties) == 0 {
		sb.WriteString(dimStyle.Render("    none defined\n"))
	}
	for i, p := range a.rubric.Penalties {
		sb.WriteString(fmt.Sprintf("%s%s %s\n", marker(i), box(a.sel.Penalties[i]), p.Text))
	}

	pCount := len(a.rubric.Penalties)
	sb.WriteString("\n" + headerStyle.Render("  Rewards") + "\n")
	if len(a.rubric.Rewards) == 0 {
		sb.WriteString(dimStyle.Render("    none defined\n"))
	}
	for i, r := range a.rubric.Rewards {
		sb.WriteString(fmt.Sprintf("%s%s %s\n", marker(pCount+i), box(a.sel.Rewards[i]), r.Text))
	}

	fixed := pCount + len(a.rubric.Rewards)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%s%s Submitted on time\n",
		marker(fixed+penRowOnTime), box(a.sel.OnTime)))
	sb.WriteString(fmt.Sprintf("%sDays late: %s\n",
		marker(fixed+penRowDelay), a.delay.View()))
	sb.WriteString(fmt.Sprintf("%s%s Double grading mode\n",
		marker(fixed+penRowDouble), box(a.sel.DoubleMode)))
	sb.WriteString(fmt.Sprintf("%s%s Work variant capped at 8 points\n",
		marker(fixed+penRowLimitEight), box(a.sel.LimitToEight)))
	sb.WriteString(fmt.Sprintf("%sComment:\n%s\n",
		marker(fixed+penRowComment), a.comment.View()))

	sb.WriteString(dimStyle.Render(
		"\n  enter/space: toggle or edit  esc: leave comment box\n"))
	return sb.String()
}
