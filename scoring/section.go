package scoring

import (
	"math"

	"github.com/gradelab/gradesheet/rubric"
)

// ScoreSection computes one section's score and the reason texts shown
// next to it on the grade sheet. The score is clamped to
// [0, sec.MaxScore] in every branch.
func ScoreSection(sec rubric.Section, sel SectionSelection) (float64, []string) {
	switch sec.Kind {
	case rubric.ExclusiveWithDeductions:
		return scoreExclusive(sec, sel)
	case rubric.IndependentToggles:
		return scoreToggles(sec, sel)
	}
	return 0, nil
}

func scoreExclusive(sec rubric.Section, sel SectionSelection) (float64, []string) {
	idx := sel.ActiveOption
	if idx < 0 || idx >= len(sec.Options) {
		// no option matches the selection; should not normally occur
		return 0, nil
	}
	opt := sec.Options[idx]

	if len(opt.Suboptions) > 0 {
		var reasons []string
		selected := 0
		if idx < len(sel.Suboptions) {
			for j, on := range sel.Suboptions[idx] {
				if on && j < len(opt.Suboptions) {
					selected++
					reasons = append(reasons, opt.Suboptions[j])
				}
			}
		}
		deduction := math.Abs(opt.Score) * float64(selected)
		if deduction > sec.MaxScore {
			deduction = sec.MaxScore
		}
		return sec.MaxScore - deduction, reasons
	}

	// without suboptions a non-negative score is an absolute point
	// value; a negative one is a deduction from the maximum
	score := opt.Score
	if opt.Score < 0 {
		score = sec.MaxScore + opt.Score
	}
	return clamp(score, 0, sec.MaxScore), nil
}

func scoreToggles(sec rubric.Section, sel SectionSelection) (float64, []string) {
	var reasons []string
	sum := 0.0
	for i, on := range sel.Toggles {
		if !on || i >= len(sec.Options) {
			continue
		}
		sum += sec.Options[i].Score
		if sec.Options[i].Score < 0 {
			reasons = append(reasons, sec.Options[i].Text)
		}
	}
	return clamp(sum, 0, sec.MaxScore), reasons
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
