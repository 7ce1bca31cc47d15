package rubric_test

import (
	"testing"

	"github.com/gradelab/gradesheet/rubric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCriteria = `{
  "sections": {
    "Homework 1": [
      {
        "title": "Correctness",
        "type": "radio_with_subchecks",
        "max_score": 10,
        "options": [
          {"text": "fully correct", "score": 10},
          {
            "text": "minor mistakes",
            "score": -2,
            "suboptions": ["off-by-one in loop", "missing edge case"]
          }
        ]
      },
      {
        "title": "Style",
        "type": "checkbox",
        "max_score": 2,
        "options": [
          {"text": "consistent naming", "score": 1},
          {"text": "documented public API", "score": 1},
          {"text": "dead code left in", "score": -1}
        ]
      }
    ],
    "Homework 2": {
      "base": [
        {
          "title": "Core task",
          "type": "radio_with_subchecks",
          "max_score": 8,
          "options": [{"text": "done", "score": 8}]
        }
      ],
      "extended": [
        {
          "title": "Bonus task",
          "type": "checkbox",
          "max_score": 2,
          "options": [{"text": "bonus part works", "score": 2}]
        }
      ]
    }
  },
  "penalties": [
    {"text": "late style fixes", "score": -1},
    {"text": "plagiarism", "score": -1000}
  ],
  "rewards": [{"text": "exceptional report", "score": 1}],
  "delays": {"text": "days late", "score_per_day": -2},
  "aliases": {"HW_1": "Homework 1"}
}`

func TestParseCriteria(t *testing.T) {
	r, err := rubric.Parse([]byte(sampleCriteria))
	require.NoError(t, err)

	assert.Equal(t, []string{"Homework 1", "Homework 2"}, r.HomeworkNames())

	hw1 := r.Sections["Homework 1"]
	require.Len(t, hw1.Base, 2)
	assert.Empty(t, hw1.Extended)

	correctness := hw1.Base[0]
	assert.Equal(t, rubric.ExclusiveWithDeductions, correctness.Kind)
	assert.Equal(t, 10.0, correctness.MaxScore)
	require.Len(t, correctness.Options, 2)
	assert.Equal(t, []string{"off-by-one in loop", "missing edge case"},
		correctness.Options[1].Suboptions)

	style := hw1.Base[1]
	assert.Equal(t, rubric.IndependentToggles, style.Kind)

	require.Len(t, r.Penalties, 2)
	assert.False(t, r.Penalties[0].Disqualifies())
	assert.True(t, r.Penalties[1].Disqualifies())

	require.Len(t, r.Rewards, 1)
	assert.Equal(t, -2.0, r.Delays.ScorePerDay)
}

func TestBaseExtendedSelection(t *testing.T) {
	r, err := rubric.Parse([]byte(sampleCriteria))
	require.NoError(t, err)

	capped := r.SectionsFor("Homework 2", true)
	require.Len(t, capped, 1)
	assert.Equal(t, "Core task", capped[0].Title)

	full := r.SectionsFor("Homework 2", false)
	require.Len(t, full, 2)
	assert.Equal(t, "Bonus task", full[1].Title)

	// a flat section list ignores the cap mode
	assert.Len(t, r.SectionsFor("Homework 1", true), 2)
	assert.Len(t, r.SectionsFor("Homework 1", false), 2)
}

func TestResolveHomeworkAlias(t *testing.T) {
	r, err := rubric.Parse([]byte(sampleCriteria))
	require.NoError(t, err)

	assert.Equal(t, "Homework 1", r.ResolveHomework("HW_1"))
	assert.Equal(t, "Homework 1", r.ResolveHomework("Homework 1"))
	assert.Equal(t, "unknown", r.ResolveHomework("unknown"))

	require.Len(t, r.SectionsFor("HW_1", true), 2)
}

func TestParseRejectsUnknownSectionType(t *testing.T) {
	_, err := rubric.Parse([]byte(`{
		"sections": {"hw": [{"title": "x", "type": "slider", "max_score": 5}]}
	}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown section type")
}

func TestMaxTotal(t *testing.T) {
	r, err := rubric.Parse([]byte(sampleCriteria))
	require.NoError(t, err)

	assert.Equal(t, 12.0, rubric.MaxTotal(r.SectionsFor("Homework 1", true)))
	assert.Equal(t, 8.0, rubric.MaxTotal(r.SectionsFor("Homework 2", true)))
	assert.Equal(t, 10.0, rubric.MaxTotal(r.SectionsFor("Homework 2", false)))
	assert.Equal(t, 0.0, rubric.MaxTotal(nil))
}

func TestEmptyRubric(t *testing.T) {
	r := rubric.Empty()
	assert.Empty(t, r.HomeworkNames())
	assert.Nil(t, r.SectionsFor("anything", true))
}
