package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gradelab/gradesheet/report"
	"github.com/gradelab/gradesheet/roster"
	"github.com/gradelab/gradesheet/rubric"
	"github.com/gradelab/gradesheet/scoring"
	"github.com/gradelab/gradesheet/settings"
	"github.com/gradelab/gradesheet/sheeterr"
)

type tab int

const (
	tabInfo tab = iota
	tabCriteria
	tabPenalties
	tabReport
)

var tabNames = []string{"Info", "Criteria", "Penalties", "Report"}

type focusTarget int

const (
	focusNone focusTarget = iota
	focusVariantCount
	focusVariantOverride
	focusDelay
	focusComment
)

type app struct {
	rubric  *rubric.Rubric
	roster  *roster.Roster
	reports *report.Service

	settingsPath string
	rosterPath   string

	tab    tab
	cursor int

	status         string
	statusErr      bool
	statusBlocking bool

	homeworks   []string
	homeworkIdx int
	groups      []string
	groupIdx    int
	students    []roster.Student
	studentIdx  int

	sections []rubric.Section
	sel      *scoring.Selection

	variantCount    textinput.Model
	variantOverride textinput.Model
	delay           textinput.Model
	comment         textarea.Model
	focus           focusTarget
}

func initialApp(rub *rubric.Rubric, ros *roster.Roster, reports *report.Service,
	cfg settings.Settings, settingsPath, rosterPath string) app {

	newInput := func(value string) textinput.Model {
		ti := textinput.New()
		ti.SetValue(value)
		ti.CharLimit = 16
		ti.Width = 8
		return ti
	}

	a := app{
		rubric:       rub,
		roster:       ros,
		reports:      reports,
		settingsPath: settingsPath,
		rosterPath:   rosterPath,
		homeworks:    rub.HomeworkNames(),
		groups:       ros.Groups(),
	}

	variantCount := cfg.VariantCount
	if variantCount == "" {
		variantCount = settings.Default().VariantCount
	}
	a.variantCount = newInput(variantCount)
	a.variantOverride = newInput("")
	a.delay = newInput("0")

	a.comment = textarea.New()
	a.comment.Placeholder = "Comment shown on the sheet"
	a.comment.SetWidth(60)
	a.comment.SetHeight(4)

	a.homeworkIdx = indexOf(a.homeworks, rub.ResolveHomework(cfg.Homework))
	a.groupIdx = indexOf(a.groups, cfg.Group)
	a.students = ros.InGroup(a.currentGroup())
	for i, s := range a.students {
		if s.FullName == cfg.Student {
			a.studentIdx = i
			break
		}
	}

	a.sections = rub.SectionsFor(a.currentHomework(), cfg.LimitToEight)
	a.sel = scoring.NewSelection(a.sections, rub)
	a.sel.LimitToEight = cfg.LimitToEight
	a.sel.DoubleMode = cfg.DoubleMode
	if !cfg.OnTime {
		a.sel.SetOnTime(false)
	}
	a.syncInputs()

	return a
}

func indexOf(list []string, value string) int {
	for i, v := range list {
		if v == value {
			return i
		}
	}
	return 0
}

func (a app) Init() tea.Cmd {
	return textinput.Blink
}

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case generateResult:
		if msg.err != nil {
			a.setError(sheeterr.ErrReportRender().SetDebug(msg.err))
		} else {
			a.setStatus("grade sheet saved to " + msg.path)
		}
		return a, nil
	case copyResult:
		if msg.err != nil {
			if serr, ok := msg.err.(*sheeterr.Error); ok {
				a.setError(serr)
			} else {
				a.setError(sheeterr.ErrReportRender().SetDebug(msg.err))
			}
		} else {
			a.setStatus(msg.what + " copied to clipboard")
		}
		return a, nil
	case exportResult:
		if msg.err != nil {
			a.setError(sheeterr.ErrReportRender().SetDebug(msg.err))
		} else {
			a.setStatus("archive written to " + msg.path)
		}
		return a, nil
	case tea.KeyMsg:
		if a.focus != focusNone {
			return a.updateFocused(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			a.saveState()
			return a, tea.Quit
		case "tab":
			a.tab = (a.tab + 1) % tab(len(tabNames))
			a.cursor = 0
			return a, nil
		case "shift+tab":
			a.tab = (a.tab + tab(len(tabNames)) - 1) % tab(len(tabNames))
			a.cursor = 0
			return a, nil
		case "ctrl+n":
			a.moveStudent(1)
			return a, nil
		case "ctrl+p":
			a.moveStudent(-1)
			return a, nil
		case "g":
			return a.startGenerate()
		case "c":
			return a.startCopyImage()
		case "t":
			return a.startCopyText()
		case "z":
			return a.startExport()
		}

		switch a.tab {
		case tabInfo:
			return a.updateInfo(msg)
		case tabCriteria:
			return a.updateCriteria(msg)
		case tabPenalties:
			return a.updatePenalties(msg)
		}
	}
	return a, nil
}

// updateFocused routes keys to the focused input. Enter (escape for the
// comment box) commits the value and returns focus to the form.
func (a app) updateFocused(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "esc" || (key == "enter" && a.focus != focusComment) {
		a.commitFocused()
		return a, nil
	}

	var cmd tea.Cmd
	switch a.focus {
	case focusVariantCount:
		a.variantCount, cmd = a.variantCount.Update(msg)
	case focusVariantOverride:
		a.variantOverride, cmd = a.variantOverride.Update(msg)
	case focusDelay:
		a.delay, cmd = a.delay.Update(msg)
	case focusComment:
		a.comment, cmd = a.comment.Update(msg)
	}
	return a, cmd
}

func (a *app) commitFocused() {
	switch a.focus {
	case focusVariantCount:
		a.variantCount.Blur()
		if _, err := parsePositiveInt(a.variantCount.Value()); err != nil {
			a.setError(sheeterr.ErrBadVariantCount().SetDebug(err))
		} else {
			a.setStatus("")
		}
	case focusVariantOverride:
		a.variantOverride.Blur()
		a.commitVariantOverride()
	case focusDelay:
		a.delay.Blur()
		days, err := parseNonNegativeInt(a.delay.Value())
		if err != nil {
			a.setError(sheeterr.ErrBadDelayDays().SetDebug(err))
			a.delay.SetValue(strconv.Itoa(a.sel.DelayDays))
		} else {
			a.sel.SetDelayDays(days)
			a.setStatus("")
		}
	case focusComment:
		a.comment.Blur()
		a.sel.Comment = a.comment.Value()
	}
	a.focus = focusNone
}

func (a *app) commitVariantOverride() {
	student, ok := a.currentStudent()
	if !ok {
		a.setError(sheeterr.ErrNoStudentSelected())
		return
	}
	value := strings.TrimSpace(a.variantOverride.Value())
	a.roster.SetVariant(student.Group, student.FullName, value)
	if err := a.roster.Save(a.rosterPath); err != nil {
		a.setError(sheeterr.ErrRosterLoad().SetDebug(err))
		return
	}
	a.students = a.roster.InGroup(a.currentGroup())
	a.setStatus("variant override saved")
}

func (a app) View() string {
	var sb strings.Builder

	for i, name := range tabNames {
		if tab(i) == a.tab {
			sb.WriteString(activeTabStyle.Render(" " + name + " "))
		} else {
			sb.WriteString(tabStyle.Render(" " + name + " "))
		}
	}
	sb.WriteString("\n\n")

	switch a.tab {
	case tabInfo:
		sb.WriteString(a.viewInfo())
	case tabCriteria:
		sb.WriteString(a.viewCriteria())
	case tabPenalties:
		sb.WriteString(a.viewPenalties())
	case tabReport:
		sb.WriteString(a.viewReport())
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(
		"tab: switch  g: generate  c: copy image  t: copy text  z: export zip  q: quit"))
	sb.WriteString("\n")
	if a.status != "" {
		switch {
		case a.statusBlocking:
			sb.WriteString(blockingStyle.Render("! " + a.status))
		case a.statusErr:
			sb.WriteString(errStyle.Render(a.status))
		default:
			sb.WriteString(okStyle.Render(a.status))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (a *app) setStatus(msg string) {
	a.status = msg
	a.statusErr = false
	a.statusBlocking = false
}

func (a *app) setError(err *sheeterr.Error) {
	a.status = err.Error()
	a.statusErr = true
	a.statusBlocking = err.Blocking()
}

func (a *app) currentHomework() string {
	if len(a.homeworks) == 0 {
		return ""
	}
	return a.homeworks[a.homeworkIdx]
}

func (a *app) currentGroup() string {
	if len(a.groups) == 0 {
		return ""
	}
	return a.groups[a.groupIdx]
}

func (a *app) currentStudent() (roster.Student, bool) {
	if len(a.students) == 0 || a.studentIdx < 0 || a.studentIdx >= len(a.students) {
		return roster.Student{}, false
	}
	return a.students[a.studentIdx], true
}

func (a *app) moveStudent(delta int) {
	if len(a.students) == 0 {
		a.setError(sheeterr.ErrNoStudentSelected())
		return
	}
	a.studentIdx = (a.studentIdx + delta + len(a.students)) % len(a.students)
	a.onStudentChanged()
}

// onStudentChanged resets the form to the default maximum selection,
// keeping only the scoring mode flags.
func (a *app) onStudentChanged() {
	limitToEight := a.sel.LimitToEight
	doubleMode := a.sel.DoubleMode

	a.sections = a.rubric.SectionsFor(a.currentHomework(), limitToEight)
	a.sel = scoring.NewSelection(a.sections, a.rubric)
	a.sel.LimitToEight = limitToEight
	a.sel.DoubleMode = doubleMode
	a.syncInputs()
	a.setStatus("")
}

// refreshSections recomputes the visible sections after a cap-mode
// change and seeds selections for sections that just became visible.
func (a *app) refreshSections() {
	a.sections = a.rubric.SectionsFor(a.currentHomework(), a.sel.LimitToEight)
	for _, sec := range a.sections {
		if _, ok := a.sel.Sections[sec.Title]; !ok {
			a.sel.Sections[sec.Title] = scoring.NewSectionSelection(sec)
		}
	}
}

func (a *app) syncInputs() {
	a.delay.SetValue(strconv.Itoa(a.sel.DelayDays))
	a.comment.SetValue(a.sel.Comment)
	if student, ok := a.currentStudent(); ok {
		a.variantOverride.SetValue(student.Variant)
	} else {
		a.variantOverride.SetValue("")
	}
}

// currentVariant resolves the variant number for the selected student:
// the roster override when present, the positional assignment otherwise.
func (a *app) currentVariant() (string, *sheeterr.Error) {
	if _, ok := a.currentStudent(); !ok {
		return "", sheeterr.ErrNoStudentSelected()
	}
	count, err := parsePositiveInt(a.variantCount.Value())
	if err != nil {
		return "", sheeterr.ErrBadVariantCount().SetDebug(err)
	}
	variant, err := roster.VariantFor(a.students, a.studentIdx, count)
	if err != nil {
		return "", sheeterr.ErrBadVariantCount().SetDebug(err)
	}
	return variant, nil
}

func (a *app) saveState() {
	student, _ := a.currentStudent()
	variant, _ := a.currentVariant()
	cfg := settings.Settings{
		Homework:     a.currentHomework(),
		VariantCount: strings.TrimSpace(a.variantCount.Value()),
		Group:        a.currentGroup(),
		Student:      student.FullName,
		Variant:      variant,
		OnTime:       a.sel.OnTime,
		DoubleMode:   a.sel.DoubleMode,
		LimitToEight: a.sel.LimitToEight,
	}
	if err := settings.Save(a.settingsPath, cfg); err != nil {
		a.setError(sheeterr.New("settings_save_failed", "failed to save settings").SetDebug(err))
	}
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

func parseNonNegativeInt(s string) (int, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
