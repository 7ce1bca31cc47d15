package rubric

import (
	"sort"

	"golang.org/x/exp/maps"
)

// DisqualifyThreshold marks a penalty as a disqualification: selecting
// it zeroes the whole grade no matter what else is ticked.
const DisqualifyThreshold = -1000

type SectionKind int

const (
	// ExclusiveWithDeductions sections pick exactly one option; the
	// option's suboptions each subtract the option's score once more.
	ExclusiveWithDeductions SectionKind = iota
	// IndependentToggles sections sum the scores of every checked option.
	IndependentToggles
)

type Option struct {
	Text       string
	Score      float64
	Suboptions []string
}

type Section struct {
	Title    string
	Kind     SectionKind
	MaxScore float64
	Options  []Option
}

// SectionSet holds a homework's criteria. Extended sections exist only
// for homeworks that offer a richer variant of the assignment and are
// graded only when the 8-point cap is off.
type SectionSet struct {
	Base     []Section
	Extended []Section
}

// For returns the sections to grade under the given cap mode.
func (s SectionSet) For(limitToEight bool) []Section {
	if limitToEight || len(s.Extended) == 0 {
		return s.Base
	}
	res := make([]Section, 0, len(s.Base)+len(s.Extended))
	res = append(res, s.Base...)
	res = append(res, s.Extended...)
	return res
}

type Penalty struct {
	Text  string
	Score float64
}

func (p Penalty) Disqualifies() bool {
	return p.Score <= DisqualifyThreshold
}

type Reward struct {
	Text  string
	Score float64
}

type DelayPolicy struct {
	Text        string
	ScorePerDay float64
}

type Rubric struct {
	Sections  map[string]SectionSet // keyed by homework name
	Penalties []Penalty
	Rewards   []Reward
	Delays    DelayPolicy
	Aliases   map[string]string // old homework name -> current one
}

// Empty returns a rubric with no homeworks. Used as the fallback when
// the criteria file is missing or malformed so the UI can still start.
func Empty() *Rubric {
	return &Rubric{
		Sections: map[string]SectionSet{},
		Aliases:  map[string]string{},
	}
}

// HomeworkNames lists the known homework names in sorted order.
func (r *Rubric) HomeworkNames() []string {
	names := maps.Keys(r.Sections)
	sort.Strings(names)
	return names
}

// ResolveHomework maps a possibly outdated homework name (e.g. one
// restored from a previous session) to its current name. Unknown names
// are returned unchanged.
func (r *Rubric) ResolveHomework(name string) string {
	if mapped, ok := r.Aliases[name]; ok {
		return mapped
	}
	return name
}

// SectionsFor returns the sections of the named homework under the
// given cap mode, or nil if the homework is unknown.
func (r *Rubric) SectionsFor(homework string, limitToEight bool) []Section {
	set, ok := r.Sections[r.ResolveHomework(homework)]
	if !ok {
		return nil
	}
	return set.For(limitToEight)
}

// MaxTotal sums the section maximums of the given section list.
func MaxTotal(sections []Section) float64 {
	total := 0.0
	for _, sec := range sections {
		total += sec.MaxScore
	}
	return total
}
