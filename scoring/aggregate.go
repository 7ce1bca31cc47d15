package scoring

import (
	"fmt"
	"math"

	"github.com/gradelab/gradesheet/rubric"
)

// DisplayCap is what the sheet always shows the final grade against,
// regardless of the cap used internally for clamping.
const DisplayCap = 10.0

type SectionResult struct {
	Title    string
	Score    float64
	MaxScore float64
	Reasons  []string
}

// Breakdown is the full scoring result handed to the report renderer.
type Breakdown struct {
	Sections []SectionResult
	Total    float64 // sum of section scores before penalties/rewards
	Final    float64

	// DisplayCap is the "out of N" value on the sheet, always 10.
	DisplayCap float64

	PenaltyComments []string
	RewardComments  []string

	DelayDays    int // effective delay days
	OnTime       bool
	Disqualified bool

	Comment string
}

// scale is the resolution of the active scoring mode: the cap used for
// clamping, the cap the mode targets, and a reserved rescaling factor
// between the raw rubric scale and the display scale. The factor is
// always 1.0 today.
type scale struct {
	EffectiveCap float64
	TargetCap    float64
	Factor       float64
}

func resolveScale(maxTotal float64, limitToEight, doubleMode bool) scale {
	// limit-to-eight wins when both flags are set
	if limitToEight {
		target := 8.0
		eff := target
		if maxTotal > 0 {
			eff = math.Min(maxTotal, target)
		}
		return scale{EffectiveCap: math.Max(0, eff), TargetCap: target, Factor: 1.0}
	}
	if doubleMode {
		return scale{EffectiveCap: 10, TargetCap: 10, Factor: 1.0}
	}
	target := maxTotal
	if target <= 0 {
		target = 10
	}
	return scale{EffectiveCap: math.Max(0, maxTotal), TargetCap: target, Factor: 1.0}
}

// Evaluate computes the full breakdown for one homework. It is a pure
// function: the same rubric and selection always produce an identical
// breakdown, and nothing is mutated.
func Evaluate(sections []rubric.Section, r *rubric.Rubric, sel *Selection) *Breakdown {
	b := &Breakdown{
		DisplayCap: DisplayCap,
		OnTime:     sel.OnTime,
		Comment:    sel.Comment,
	}

	total := 0.0
	for _, sec := range sections {
		score, reasons := ScoreSection(sec, sel.Sections[sec.Title])
		b.Sections = append(b.Sections, SectionResult{
			Title:    sec.Title,
			Score:    score,
			MaxScore: sec.MaxScore,
			Reasons:  reasons,
		})
		total += score
	}

	penaltySum := 0.0
	for i, on := range sel.Penalties {
		if !on || i >= len(r.Penalties) {
			continue
		}
		p := r.Penalties[i]
		if p.Disqualifies() {
			b.Disqualified = true
		} else {
			penaltySum += p.Score
		}
		b.PenaltyComments = append(b.PenaltyComments, p.Text)
	}

	effDelayDays := sel.DelayDays
	if !sel.OnTime && effDelayDays == 0 {
		effDelayDays = 1
	}
	b.DelayDays = effDelayDays

	forcedZeroDueToDelay := effDelayDays > 0
	delayCommentIdx := -1
	if forcedZeroDueToDelay {
		delayCommentIdx = len(b.PenaltyComments)
		b.PenaltyComments = append(b.PenaltyComments, "")
	}

	rewardSum := 0.0
	for i, on := range sel.Rewards {
		if !on || i >= len(r.Rewards) {
			continue
		}
		rewardSum += r.Rewards[i].Score
		b.RewardComments = append(b.RewardComments, r.Rewards[i].Text)
	}

	// disqualification zeroes the raw total and both adjustment sums;
	// the per-section scores stay visible on the sheet
	if b.Disqualified {
		total = 0
		penaltySum = 0
		rewardSum = 0
	}

	maxTotal := rubric.MaxTotal(sections)
	sc := resolveScale(maxTotal, sel.LimitToEight, sel.DoubleMode)
	if sc.Factor != 1.0 {
		for i := range b.Sections {
			b.Sections[i].Score *= sc.Factor
		}
		penaltySum *= sc.Factor
		rewardSum *= sc.Factor
		if !b.Disqualified {
			total = 0
			for _, s := range b.Sections {
				total += s.Score
			}
		}
	}
	b.Total = total

	var final float64
	switch {
	case sel.LimitToEight:
		baseCap := sc.EffectiveCap
		if baseCap <= 0 {
			baseCap = 8
		}
		referenceMax := maxTotal
		if referenceMax <= 0 {
			referenceMax = baseCap
		}
		lost := math.Max(0, referenceMax-total)
		final = clamp(baseCap-lost+penaltySum+rewardSum, 0, baseCap)
	case sel.DoubleMode:
		baseCap := sc.EffectiveCap
		if baseCap <= 0 {
			baseCap = 10
		}
		referenceMax := maxTotal
		if referenceMax <= 0 {
			referenceMax = baseCap
		}
		ratio := 1.0
		if referenceMax > 0 {
			ratio = baseCap / referenceMax
		}
		lost := math.Max(0, referenceMax-total) * ratio
		final = clamp(baseCap-lost+penaltySum+rewardSum, 0, baseCap)
	case sc.EffectiveCap > 0:
		final = clamp(total+penaltySum+rewardSum, 0, sc.EffectiveCap)
	default:
		final = math.Max(0, total+penaltySum+rewardSum)
	}

	// a late submission zeroes the grade no matter what was computed
	if forcedZeroDueToDelay {
		final = 0
		b.PenaltyComments[delayCommentIdx] = fmt.Sprintf(
			"Submitted %d day(s) late. Final grade is 0 per course policy.",
			effDelayDays)
	}
	b.Final = final

	return b
}
