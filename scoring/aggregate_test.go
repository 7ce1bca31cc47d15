package scoring_test

import (
	"testing"

	"github.com/gradelab/gradesheet/rubric"
	"github.com/gradelab/gradesheet/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRubric() *rubric.Rubric {
	r := rubric.Empty()
	r.Penalties = []rubric.Penalty{
		{Text: "late style fixes", Score: -1},
		{Text: "plagiarism", Score: -1000},
	}
	r.Rewards = []rubric.Reward{
		{Text: "exceptional report", Score: 1},
	}
	return r
}

// one exclusive section, max 10, active option −2 with two suboptions
func singleSection() []rubric.Section {
	return []rubric.Section{exclusiveSection()}
}

func selectionWith(sections []rubric.Section, r *rubric.Rubric,
	mutate func(*scoring.Selection)) *scoring.Selection {

	sel := scoring.NewSelection(sections, r)
	sel.LimitToEight = false
	if mutate != nil {
		mutate(sel)
	}
	return sel
}

func TestPlainModeExampleScenario(t *testing.T) {
	sections := singleSection()
	r := testRubric()
	sel := selectionWith(sections, r, func(s *scoring.Selection) {
		sec := s.Sections["Correctness"]
		sec.SelectOption(1)
		sec.ToggleSuboption(1, 0)
		s.Sections["Correctness"] = sec
	})

	b := scoring.Evaluate(sections, r, sel)
	require.Len(t, b.Sections, 1)
	assert.Equal(t, 8.0, b.Sections[0].Score) // 10 − 2×1
	assert.Equal(t, 8.0, b.Total)
	assert.Equal(t, 8.0, b.Final) // clamped to [0, 10]
	assert.Equal(t, 10.0, b.DisplayCap)
	assert.False(t, b.Disqualified)
}

func TestDelayForcesZeroWithNote(t *testing.T) {
	sections := singleSection()
	r := testRubric()
	sel := selectionWith(sections, r, func(s *scoring.Selection) {
		s.SetDelayDays(3)
	})
	require.False(t, sel.OnTime)

	b := scoring.Evaluate(sections, r, sel)
	assert.Equal(t, 0.0, b.Final)
	assert.Equal(t, 3, b.DelayDays)
	require.Len(t, b.PenaltyComments, 1)
	assert.Contains(t, b.PenaltyComments[0], "3 day(s) late")
}

func TestOffTimeWithZeroDelayCountsAsOneDay(t *testing.T) {
	sections := singleSection()
	r := testRubric()
	sel := selectionWith(sections, r, nil)
	sel.OnTime = false
	sel.DelayDays = 0

	b := scoring.Evaluate(sections, r, sel)
	assert.Equal(t, 0.0, b.Final)
	assert.Equal(t, 1, b.DelayDays)
	require.Len(t, b.PenaltyComments, 1)
	assert.Contains(t, b.PenaltyComments[0], "1 day(s) late")
}

func TestDelayOverridesRewardsAboveCap(t *testing.T) {
	sections := singleSection()
	r := testRubric()
	sel := selectionWith(sections, r, func(s *scoring.Selection) {
		s.Rewards[0] = true
		s.SetDelayDays(2)
	})

	b := scoring.Evaluate(sections, r, sel)
	assert.Equal(t, 0.0, b.Final)
	assert.Equal(t, []string{"exceptional report"}, b.RewardComments)
}

func TestLimitToEightExampleScenario(t *testing.T) {
	// max_total 10, total 6, one reward +1 -> 8 − 4 + 1 = 5
	sections := []rubric.Section{{
		Title:    "Task",
		Kind:     rubric.ExclusiveWithDeductions,
		MaxScore: 10,
		Options: []rubric.Option{
			{Text: "full", Score: 10},
			{Text: "partial", Score: 6},
		},
	}}
	r := testRubric()
	sel := scoring.NewSelection(sections, r)
	require.True(t, sel.LimitToEight)
	sec := sel.Sections["Task"]
	sec.SelectOption(1)
	sel.Sections["Task"] = sec
	sel.Rewards[0] = true

	b := scoring.Evaluate(sections, r, sel)
	assert.Equal(t, 6.0, b.Total)
	assert.Equal(t, 5.0, b.Final)
}

func TestLimitToEightNeverExceedsEight(t *testing.T) {
	sections := singleSection()
	r := testRubric()
	sel := scoring.NewSelection(sections, r) // defaults: max score, limit 8
	sel.Rewards[0] = true

	b := scoring.Evaluate(sections, r, sel)
	assert.LessOrEqual(t, b.Final, 8.0)
	assert.Equal(t, 8.0, b.Final) // 8 − 0 + 0 + 1 clamps to 8
}

func TestDoubleModeNeverExceedsTen(t *testing.T) {
	sections := singleSection()
	r := testRubric()
	sel := selectionWith(sections, r, func(s *scoring.Selection) {
		s.DoubleMode = true
		s.LimitToEight = false
		s.Rewards[0] = true
	})

	b := scoring.Evaluate(sections, r, sel)
	assert.LessOrEqual(t, b.Final, 10.0)
	assert.Equal(t, 10.0, b.Final)
}

func TestDoubleModeProportionalLoss(t *testing.T) {
	// max_total 20, total 15 -> lost 5 × (10/20) = 2.5, final 7.5
	sections := []rubric.Section{
		{
			Title:    "A",
			Kind:     rubric.ExclusiveWithDeductions,
			MaxScore: 10,
			Options:  []rubric.Option{{Text: "full", Score: 10}, {Text: "half", Score: 5}},
		},
		{
			Title:    "B",
			Kind:     rubric.ExclusiveWithDeductions,
			MaxScore: 10,
			Options:  []rubric.Option{{Text: "full", Score: 10}},
		},
	}
	r := testRubric()
	sel := selectionWith(sections, r, func(s *scoring.Selection) {
		s.DoubleMode = true
		sec := s.Sections["A"]
		sec.SelectOption(1)
		s.Sections["A"] = sec
	})

	b := scoring.Evaluate(sections, r, sel)
	assert.InDelta(t, 7.5, b.Final, 1e-9)
}

func TestLimitToEightWinsOverDoubleMode(t *testing.T) {
	sections := singleSection()
	r := testRubric()
	sel := selectionWith(sections, r, func(s *scoring.Selection) {
		s.DoubleMode = true
		s.LimitToEight = true
	})

	b := scoring.Evaluate(sections, r, sel)
	assert.LessOrEqual(t, b.Final, 8.0)
}

func TestDisqualificationZeroesEverything(t *testing.T) {
	sections := singleSection()
	r := testRubric()
	sel := selectionWith(sections, r, func(s *scoring.Selection) {
		s.Penalties[1] = true // plagiarism, score −1000
		s.Rewards[0] = true
	})

	for _, mode := range []struct {
		name         string
		limitToEight bool
		doubleMode   bool
	}{
		{"plain", false, false},
		{"limit_to_eight", true, false},
		{"double", false, true},
	} {
		sel.LimitToEight = mode.limitToEight
		sel.DoubleMode = mode.doubleMode
		b := scoring.Evaluate(sections, r, sel)
		assert.Equal(t, 0.0, b.Final, mode.name)
		assert.True(t, b.Disqualified, mode.name)
		assert.Contains(t, b.PenaltyComments, "plagiarism", mode.name)
	}
}

func TestNonDisqualifyingPenaltySubtracts(t *testing.T) {
	sections := singleSection()
	r := testRubric()
	sel := selectionWith(sections, r, func(s *scoring.Selection) {
		s.Penalties[0] = true // −1
	})

	b := scoring.Evaluate(sections, r, sel)
	assert.Equal(t, 9.0, b.Final) // 10 − 1
	assert.Equal(t, []string{"late style fixes"}, b.PenaltyComments)
}

func TestUncappedWhenNoSections(t *testing.T) {
	r := testRubric()
	sel := selectionWith(nil, r, func(s *scoring.Selection) {
		s.Rewards[0] = true
	})

	b := scoring.Evaluate(nil, r, sel)
	assert.Equal(t, 1.0, b.Final) // max(0, 0 + 0 + 1), no cap
}

func TestEvaluateIsIdempotent(t *testing.T) {
	sections := singleSection()
	r := testRubric()
	sel := selectionWith(sections, r, func(s *scoring.Selection) {
		sec := s.Sections["Correctness"]
		sec.SelectOption(1)
		sec.ToggleSuboption(1, 1)
		s.Sections["Correctness"] = sec
		s.Penalties[0] = true
		s.Rewards[0] = true
		s.SetDelayDays(0)
	})

	first := scoring.Evaluate(sections, r, sel)
	second := scoring.Evaluate(sections, r, sel)
	assert.Equal(t, first, second)
}

func TestModeFlagCoupling(t *testing.T) {
	sections := singleSection()
	r := testRubric()
	sel := scoring.NewSelection(sections, r)

	sel.LimitToEight = false
	sel.SetDoubleMode(true)
	assert.True(t, sel.LimitToEight) // double mode forces the 8-point cap on

	sel.LimitToEight = false
	sel.SetDoubleMode(false)
	assert.True(t, sel.LimitToEight) // outside double mode the cap is fixed on
}

func TestDelayCoupling(t *testing.T) {
	sections := singleSection()
	r := testRubric()
	sel := scoring.NewSelection(sections, r)

	sel.SetOnTime(false)
	assert.Equal(t, 1, sel.DelayDays)

	sel.SetOnTime(true)
	assert.Equal(t, 0, sel.DelayDays)

	sel.SetDelayDays(4)
	assert.False(t, sel.OnTime)

	sel.SetDelayDays(0)
	assert.True(t, sel.OnTime)
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "8", scoring.FormatScore(8.0))
	assert.Equal(t, "8.5", scoring.FormatScore(8.5))
	assert.Equal(t, "7.25", scoring.FormatScore(7.25))
	assert.Equal(t, "0", scoring.FormatScore(0))
	assert.Equal(t, "9.5", scoring.FormatScore(9.499999))
}
