package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gradelab/gradesheet/rubric"
	"github.com/gradelab/gradesheet/scoring"
)

type critRowKind int

const (
	critRowSection critRowKind = iota
	critRowOption
	critRowSuboption
)

// critRow flattens the section tree into navigable lines. Suboption
// rows exist only under the active option of an exclusive section.
type critRow struct {
	kind   critRowKind
	secIdx int
	optIdx int
	subIdx int
}

func (a *app) criteriaRows() []critRow {
	var rows []critRow
	for si, sec := range a.sections {
		rows = append(rows, critRow{kind: critRowSection, secIdx: si})
		sel := a.sel.Sections[sec.Title]
		for oi, opt := range sec.Options {
			rows = append(rows, critRow{kind: critRowOption, secIdx: si, optIdx: oi})
			if sec.Kind == rubric.ExclusiveWithDeductions && sel.ActiveOption == oi {
				for subIdx := range opt.Suboptions {
					rows = append(rows, critRow{
						kind: critRowSuboption, secIdx: si, optIdx: oi, subIdx: subIdx,
					})
				}
			}
		}
	}
	return rows
}

func (a app) updateCriteria(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := a.criteriaRows()
	if len(rows) == 0 {
		return a, nil
	}
	if a.cursor >= len(rows) {
		a.cursor = len(rows) - 1
	}

	switch msg.String() {
	case "up", "k":
		a.moveCriteriaCursor(rows, -1)
	case "down", "j":
		a.moveCriteriaCursor(rows, 1)
	case "enter", " ":
		a.activateCriteriaRow(rows[a.cursor])
		// the suboption rows under the cursor may have changed
		if rows = a.criteriaRows(); a.cursor >= len(rows) {
			a.cursor = len(rows) - 1
		}
	case "r":
		a.sel.SetToMax(a.sections)
		a.setStatus("criteria reset to maximum")
	case "x":
		a.sel.Clear(a.sections)
		// clearing forces the 8-point cap back on, which hides the
		// extended sections
		a.refreshSections()
		if rows = a.criteriaRows(); len(rows) > 0 && a.cursor >= len(rows) {
			a.cursor = len(rows) - 1
		}
		a.syncInputs()
		a.setStatus("criteria cleared")
	}
	return a, nil
}

// moveCriteriaCursor steps over section header rows, which only label
// the options below them.
func (a *app) moveCriteriaCursor(rows []critRow, delta int) {
	i := a.cursor
	for {
		i += delta
		if i < 0 || i >= len(rows) {
			return
		}
		if rows[i].kind != critRowSection {
			a.cursor = i
			return
		}
	}
}

func (a *app) activateCriteriaRow(row critRow) {
	sec := a.sections[row.secIdx]
	sel := a.sel.Sections[sec.Title]

	switch row.kind {
	case critRowOption:
		if sec.Kind == rubric.ExclusiveWithDeductions {
			sel.SelectOption(row.optIdx)
		} else {
			sel.Toggle(row.optIdx)
		}
	case critRowSuboption:
		sel.ToggleSuboption(row.optIdx, row.subIdx)
	default:
		return
	}
	a.sel.Sections[sec.Title] = sel
}

func (a app) viewCriteria() string {
	rows := a.criteriaRows()
	if len(rows) == 0 {
		return dimStyle.Render("  No criteria for this homework.\n")
	}
	if a.cursor >= len(rows) {
		a.cursor = len(rows) - 1
	}

	var sb strings.Builder
	for i, row := range rows {
		marker := "  "
		if i == a.cursor {
			marker = cursorStyle.Render("> ")
		}

		sec := a.sections[row.secIdx]
		sel := a.sel.Sections[sec.Title]
		switch row.kind {
		case critRowSection:
			score, _ := scoring.ScoreSection(sec, sel)
			sb.WriteString(fmt.Sprintf("\n%s%s\n", marker, headerStyle.Render(
				fmt.Sprintf("%s  (%s of %s)", sec.Title,
					scoring.FormatScore(score), scoring.FormatScore(sec.MaxScore)))))
		case critRowOption:
			opt := sec.Options[row.optIdx]
			box := "[ ]"
			if sec.Kind == rubric.ExclusiveWithDeductions {
				box = "( )"
				if sel.ActiveOption == row.optIdx {
					box = "(*)"
				}
			} else if sel.Toggles[row.optIdx] {
				box = "[x]"
			}
			sb.WriteString(fmt.Sprintf("%s  %s %s  (%s)\n",
				marker, box, opt.Text, scoring.FormatScore(opt.Score)))
		case critRowSuboption:
			opt := sec.Options[row.optIdx]
			box := "[ ]"
			if sel.Suboptions[row.optIdx][row.subIdx] {
				box = "[x]"
			}
			sb.WriteString(fmt.Sprintf("%s      %s %s\n",
				marker, box, opt.Suboptions[row.subIdx]))
		}
	}

	sb.WriteString(dimStyle.Render(
		"\n  enter/space: select  r: reset to max  x: clear all\n"))
	return sb.String()
}
