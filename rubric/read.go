package rubric

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

// Read loads a criteria definition file. The file maps homework names
// to either a flat list of sections or a {base, extended} pair; the
// penalty, reward and delay blocks are shared by all homeworks.
func Read(path string) (*Rubric, error) {
	log.Printf("Reading criteria from: %s\n", path)
	content, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading criteria file: %v\n", err)
		return nil, fmt.Errorf("error reading criteria file: %w", err)
	}
	return Parse(content)
}

// Parse decodes a criteria definition from its JSON form.
func Parse(content []byte) (*Rubric, error) {
	var file criteriaFile
	if err := json.Unmarshal(content, &file); err != nil {
		log.Printf("Failed to unmarshal criteria: %v\n", err)
		return nil, fmt.Errorf("failed to unmarshal criteria: %w", err)
	}

	res := Empty()
	for name, set := range file.Sections {
		base, err := mapSections(set.base)
		if err != nil {
			return nil, fmt.Errorf("homework %q: %w", name, err)
		}
		extended, err := mapSections(set.extended)
		if err != nil {
			return nil, fmt.Errorf("homework %q: %w", name, err)
		}
		res.Sections[name] = SectionSet{Base: base, Extended: extended}
	}

	for _, p := range file.Penalties {
		res.Penalties = append(res.Penalties, Penalty{Text: p.Text, Score: p.Score})
	}
	for _, rw := range file.Rewards {
		res.Rewards = append(res.Rewards, Reward{Text: rw.Text, Score: rw.Score})
	}
	res.Delays = DelayPolicy{
		Text:        file.Delays.Text,
		ScorePerDay: file.Delays.ScorePerDay,
	}
	for from, to := range file.Aliases {
		res.Aliases[from] = to
	}

	log.Printf("Successfully parsed criteria for %d homeworks\n", len(res.Sections))
	return res, nil
}

const (
	kindExclusive = "radio_with_subchecks"
	kindToggles   = "checkbox"
)

func mapSections(raw []sectionJSON) ([]Section, error) {
	res := make([]Section, 0, len(raw))
	for _, s := range raw {
		var kind SectionKind
		switch s.Type {
		case kindExclusive:
			kind = ExclusiveWithDeductions
		case kindToggles:
			kind = IndependentToggles
		default:
			return nil, fmt.Errorf("section %q: unknown section type: %s", s.Title, s.Type)
		}
		if s.MaxScore < 0 {
			return nil, fmt.Errorf("section %q: negative max_score", s.Title)
		}
		sec := Section{
			Title:    s.Title,
			Kind:     kind,
			MaxScore: s.MaxScore,
		}
		for _, o := range s.Options {
			sec.Options = append(sec.Options, Option{
				Text:       o.Text,
				Score:      o.Score,
				Suboptions: o.Suboptions,
			})
		}
		res = append(res, sec)
	}
	return res, nil
}

type criteriaFile struct {
	Sections  map[string]sectionSetJSON `json:"sections"`
	Penalties []penaltyJSON             `json:"penalties"`
	Rewards   []penaltyJSON             `json:"rewards"`
	Delays    delayJSON                 `json:"delays"`
	Aliases   map[string]string         `json:"aliases"`
}

type sectionJSON struct {
	Title    string       `json:"title"`
	Type     string       `json:"type"`
	MaxScore float64      `json:"max_score"`
	Options  []optionJSON `json:"options"`
}

type optionJSON struct {
	Text       string   `json:"text"`
	Score      float64  `json:"score"`
	Suboptions []string `json:"suboptions"`
}

type penaltyJSON struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

type delayJSON struct {
	Text        string  `json:"text"`
	ScorePerDay float64 `json:"score_per_day"`
}

// sectionSetJSON accepts both a flat section array and an explicit
// {"base": [...], "extended": [...]} pair.
type sectionSetJSON struct {
	base     []sectionJSON
	extended []sectionJSON
}

func (s *sectionSetJSON) UnmarshalJSON(data []byte) error {
	var flat []sectionJSON
	if err := json.Unmarshal(data, &flat); err == nil {
		s.base = flat
		s.extended = nil
		return nil
	}
	var pair struct {
		Base     []sectionJSON `json:"base"`
		Extended []sectionJSON `json:"extended"`
	}
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("sections must be a list or a base/extended pair: %w", err)
	}
	s.base = pair.Base
	s.extended = pair.Extended
	return nil
}
