// Package settings persists the state of the grading session between
// runs: the selected homework, roster position and scoring mode flags.
package settings

import (
	"fmt"
	"log"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the settings file next to the executable.
const DefaultPath = "settings.toml"

type Settings struct {
	Homework     string `toml:"hw_name"`
	VariantCount string `toml:"variant_count"`
	Group        string `toml:"group"`
	Student      string `toml:"student"`
	Variant      string `toml:"variant"`
	OnTime       bool   `toml:"on_time"`
	DoubleMode   bool   `toml:"double_mode_enabled"`
	LimitToEight bool   `toml:"work_variant_is_eight"`
}

// Default returns the settings used when no file exists yet.
func Default() Settings {
	return Settings{
		VariantCount: "29",
		OnTime:       true,
		LimitToEight: true,
	}
}

// Load reads settings from path. A missing file is not an error; the
// defaults are returned instead.
func Load(path string) (Settings, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Settings file %s not found, using defaults\n", path)
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	s := Default()
	if err := toml.Unmarshal(content, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return s, nil
}

// Save writes the settings to path.
func Save(path string, s Settings) error {
	content, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}
