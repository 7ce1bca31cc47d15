package scoring

import (
	"math"

	"github.com/gradelab/gradesheet/rubric"
)

// scoreMatchTolerance is the float tolerance used when locating an
// option by its declared score. Kept for compatibility with selections
// restored from older sessions which stored the score value instead of
// the option index.
const scoreMatchTolerance = 1e-9

// SectionSelection is the captured state of one section's controls.
// Exclusive sections track the active option index plus one toggle per
// suboption of every option; toggle sections track one toggle per
// option.
type SectionSelection struct {
	ActiveOption int      // index into Options, -1 when nothing matches
	Suboptions   [][]bool // exclusive sections: per option, per suboption
	Toggles      []bool   // toggle sections: per option
}

// NewSectionSelection returns the default selection for a section:
// exclusive sections select their maximum-score option with no
// suboptions ticked, toggle sections tick every positive-score option.
func NewSectionSelection(sec rubric.Section) SectionSelection {
	sel := SectionSelection{ActiveOption: -1}
	switch sec.Kind {
	case rubric.ExclusiveWithDeductions:
		sel.Suboptions = make([][]bool, len(sec.Options))
		for i, opt := range sec.Options {
			sel.Suboptions[i] = make([]bool, len(opt.Suboptions))
		}
		best := math.Inf(-1)
		for i, opt := range sec.Options {
			if opt.Score > best {
				best = opt.Score
				sel.ActiveOption = i
			}
		}
	case rubric.IndependentToggles:
		sel.Toggles = make([]bool, len(sec.Options))
		for i, opt := range sec.Options {
			sel.Toggles[i] = opt.Score > 0
		}
	}
	return sel
}

// SelectOption makes idx the active option and clears the suboption
// toggles of every option in the section. Exclusivity is enforced at
// the option level; stale suboption state must not survive a switch.
func (s *SectionSelection) SelectOption(idx int) {
	s.ActiveOption = idx
	for i := range s.Suboptions {
		for j := range s.Suboptions[i] {
			s.Suboptions[i][j] = false
		}
	}
}

// ToggleSuboption flips one deduction reason under an option.
func (s *SectionSelection) ToggleSuboption(opt, sub int) {
	if opt < 0 || opt >= len(s.Suboptions) {
		return
	}
	if sub < 0 || sub >= len(s.Suboptions[opt]) {
		return
	}
	s.Suboptions[opt][sub] = !s.Suboptions[opt][sub]
}

// Toggle flips one independent toggle.
func (s *SectionSelection) Toggle(opt int) {
	if opt < 0 || opt >= len(s.Toggles) {
		return
	}
	s.Toggles[opt] = !s.Toggles[opt]
}

// Clear resets the section to its cleared state: exclusive sections
// activate the option whose score is 0 (none, if no such option
// exists), toggle sections untick everything.
func (s *SectionSelection) Clear(sec rubric.Section) {
	switch sec.Kind {
	case rubric.ExclusiveWithDeductions:
		s.SelectOption(OptionIndexByScore(sec, 0))
	case rubric.IndependentToggles:
		for i := range s.Toggles {
			s.Toggles[i] = false
		}
	}
}

// OptionIndexByScore locates an option by its declared score within
// the float tolerance. When two options share a score the first one
// wins, matching the historical value-matching behavior. Returns -1
// when no option matches.
func OptionIndexByScore(sec rubric.Section, score float64) int {
	for i, opt := range sec.Options {
		if math.Abs(opt.Score-score) < scoreMatchTolerance {
			return i
		}
	}
	return -1
}

// Selection is the immutable-per-evaluation snapshot of everything the
// instructor has ticked. The engine is a pure function of a rubric and
// one of these.
type Selection struct {
	Sections  map[string]SectionSelection // keyed by section title
	Penalties []bool                      // parallel to rubric.Penalties
	Rewards   []bool                      // parallel to rubric.Rewards

	DelayDays int
	OnTime    bool

	LimitToEight bool
	DoubleMode   bool

	Comment string
}

// NewSelection builds the default selection for a homework's sections:
// every criterion at its maximum, no penalties or rewards, on time.
func NewSelection(sections []rubric.Section, r *rubric.Rubric) *Selection {
	sel := &Selection{
		Sections:     map[string]SectionSelection{},
		Penalties:    make([]bool, len(r.Penalties)),
		Rewards:      make([]bool, len(r.Rewards)),
		OnTime:       true,
		LimitToEight: true,
	}
	for _, sec := range sections {
		sel.Sections[sec.Title] = NewSectionSelection(sec)
	}
	return sel
}

// SetToMax restores every section to its default maximum selection
// without touching penalties, rewards or the mode flags.
func (sel *Selection) SetToMax(sections []rubric.Section) {
	for _, sec := range sections {
		sel.Sections[sec.Title] = NewSectionSelection(sec)
	}
}

// Clear resets everything to the cleared state: sections cleared,
// penalties and rewards unticked, delay zero, on time, 8-point cap on.
func (sel *Selection) Clear(sections []rubric.Section) {
	for _, sec := range sections {
		s := sel.Sections[sec.Title]
		s.Clear(sec)
		sel.Sections[sec.Title] = s
	}
	for i := range sel.Penalties {
		sel.Penalties[i] = false
	}
	for i := range sel.Rewards {
		sel.Rewards[i] = false
	}
	sel.DelayDays = 0
	sel.OnTime = true
	sel.LimitToEight = true
	sel.Comment = ""
}

// SetDelayDays records the delay and keeps the on-time flag coupled to
// it: a positive delay clears on-time, zero restores it.
func (sel *Selection) SetDelayDays(days int) {
	sel.DelayDays = days
	sel.OnTime = days == 0
}

// SetOnTime records the flag and keeps the delay coupled to it: going
// off-time with a zero delay bumps it to one day, going on-time zeroes
// the delay.
func (sel *Selection) SetOnTime(onTime bool) {
	sel.OnTime = onTime
	if onTime {
		sel.DelayDays = 0
	} else if sel.DelayDays == 0 {
		sel.DelayDays = 1
	}
}

// SetDoubleMode records the flag; enabling double mode forces the
// 8-point cap on, which is the only state the checkbox may start from.
func (sel *Selection) SetDoubleMode(enabled bool) {
	sel.DoubleMode = enabled
	if enabled && !sel.LimitToEight {
		sel.LimitToEight = true
	}
	if !enabled {
		sel.LimitToEight = true
	}
}
