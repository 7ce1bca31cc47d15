package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gradelab/gradesheet/clipboard"
	"github.com/gradelab/gradesheet/report"
	"github.com/gradelab/gradesheet/scoring"
	"github.com/gradelab/gradesheet/sheeterr"
)

type generateResult struct {
	path string
	err  error
}

type copyResult struct {
	what string
	err  error
}

type exportResult struct {
	path string
	err  error
}

// prepareReport validates the form and evaluates the current selection.
func (a *app) prepareReport() (report.Meta, *scoring.Breakdown, *sheeterr.Error) {
	student, ok := a.currentStudent()
	if !ok {
		return report.Meta{}, nil, sheeterr.ErrNoStudentSelected()
	}
	variant, serr := a.currentVariant()
	if serr != nil {
		return report.Meta{}, nil, serr
	}

	meta := report.Meta{
		Homework: a.currentHomework(),
		Student:  student.FullName,
		Group:    student.Group,
		Variant:  variant,
	}
	if a.sel.DoubleMode && a.sel.LimitToEight {
		meta.WorkVariantCap = 8
	}
	return meta, scoring.Evaluate(a.sections, a.rubric, a.sel), nil
}

func (a app) startGenerate() (tea.Model, tea.Cmd) {
	meta, b, serr := a.prepareReport()
	if serr != nil {
		a.setError(serr)
		return a, nil
	}
	reports := a.reports
	return a, func() tea.Msg {
		artifact, err := reports.Generate(meta, b)
		if err != nil {
			return generateResult{err: err}
		}
		path, err := reports.Save(artifact)
		return generateResult{path: path, err: err}
	}
}

// startCopyImage renders the sheet without saving and places it on the
// clipboard.
func (a app) startCopyImage() (tea.Model, tea.Cmd) {
	meta, b, serr := a.prepareReport()
	if serr != nil {
		a.setError(serr)
		return a, nil
	}
	reports := a.reports
	return a, func() tea.Msg {
		artifact, err := reports.Generate(meta, b)
		if err != nil {
			return copyResult{err: err}
		}
		if err := clipboard.CopyImage(artifact.Image); err != nil {
			if errors.Is(err, clipboard.ErrUnsupported) {
				return copyResult{err: sheeterr.ErrClipboardUnavailable().SetDebug(err)}
			}
			return copyResult{err: err}
		}
		return copyResult{what: "grade sheet image"}
	}
}

func (a app) startCopyText() (tea.Model, tea.Cmd) {
	meta, b, serr := a.prepareReport()
	if serr != nil {
		a.setError(serr)
		return a, nil
	}
	text := summaryText(meta, b)
	return a, func() tea.Msg {
		if err := clipboard.CopyText(text); err != nil {
			return copyResult{err: err}
		}
		return copyResult{what: "grade summary"}
	}
}

func (a app) startExport() (tea.Model, tea.Cmd) {
	homework := a.currentHomework()
	if homework == "" {
		a.setError(sheeterr.ErrNoStudentSelected())
		return a, nil
	}
	reports := a.reports
	path := strings.ReplaceAll(homework, " ", "_") + ".zip"
	return a, func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return exportResult{err: err}
		}
		defer f.Close()
		if err := reports.ExportArchive(homework, f); err != nil {
			return exportResult{err: err}
		}
		return exportResult{path: path}
	}
}

// summaryText is the plain-text mirror of the grade sheet, used for the
// clipboard text copy.
func summaryText(meta report.Meta, b *scoring.Breakdown) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s - %s (%s), variant %s\n",
		meta.Homework, meta.Student, meta.Group, meta.Variant)
	for _, sec := range b.Sections {
		fmt.Fprintf(&sb, "%s: %s of %s\n",
			sec.Title, scoring.FormatScore(sec.Score), scoring.FormatScore(sec.MaxScore))
		for _, reason := range sec.Reasons {
			fmt.Fprintf(&sb, "  - %s\n", reason)
		}
	}
	for _, comment := range b.PenaltyComments {
		fmt.Fprintf(&sb, "Penalty: %s\n", comment)
	}
	for _, comment := range b.RewardComments {
		fmt.Fprintf(&sb, "Reward: %s\n", comment)
	}
	fmt.Fprintf(&sb, "Final grade: %s out of %s\n",
		scoring.FormatScore(b.Final), scoring.FormatScore(b.DisplayCap))
	if b.Comment != "" {
		fmt.Fprintf(&sb, "Comment: %s\n", b.Comment)
	}
	return sb.String()
}

func (a app) viewReport() string {
	meta, b, serr := a.prepareReport()
	if serr != nil {
		return "  " + dimStyle.Render(serr.Error()) + "\n"
	}

	var sb strings.Builder
	for _, line := range strings.Split(strings.TrimRight(summaryText(meta, b), "\n"), "\n") {
		sb.WriteString("  " + line + "\n")
	}
	if b.Disqualified {
		sb.WriteString("\n  " + errStyle.Render("Disqualified") + "\n")
	}
	sb.WriteString(dimStyle.Render(
		"\n  g: save sheet  c: copy image  t: copy text  z: export homework zip\n"))
	return sb.String()
}
