package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"goa.design/clue/log"

	"github.com/gradelab/gradesheet/report"
	"github.com/gradelab/gradesheet/roster"
	"github.com/gradelab/gradesheet/rubric"
	"github.com/gradelab/gradesheet/settings"
	"github.com/gradelab/gradesheet/sheeterr"
)

const (
	criteriaFilename = "criteria.json"
	rosterFilename   = "student_list.csv"
	settingsFilename = "settings.toml"
)

func main() {
	ctx := log.Context(context.Background())

	// .env is optional; it may override the data/font/output directories
	_ = godotenv.Load()

	dataDir := os.Getenv("GRADESHEET_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	fontsDir := os.Getenv("GRADESHEET_FONTS_DIR")
	emojiDir := os.Getenv("GRADESHEET_EMOJI_DIR")
	outDir := os.Getenv("GRADESHEET_OUT_DIR")

	var startupErr *sheeterr.Error
	startupStatus := ""

	rub, err := rubric.Read(filepath.Join(dataDir, criteriaFilename))
	if err != nil {
		rub = rubric.Empty()
		startupErr = sheeterr.ErrRubricLoad().SetDebug(err)
	}

	rosterPath := filepath.Join(dataDir, rosterFilename)
	ros, rosterStatus, rosterErr := loadRoster(rosterPath)
	if startupErr == nil {
		startupErr = rosterErr
		startupStatus = rosterStatus
	}

	settingsPath := filepath.Join(dataDir, settingsFilename)
	cfg, err := settings.Load(settingsPath)
	if err != nil {
		cfg = settings.Default()
	}

	fonts, err := report.LoadFonts(fontsDir)
	if err != nil {
		log.Fatalf(ctx, err, "failed to load grade sheet fonts")
	}
	reports := report.NewService(report.NewRenderer(fonts, emojiDir), outDir)

	a := initialApp(rub, ros, reports, cfg, settingsPath, rosterPath)
	if startupErr != nil {
		a.setError(startupErr)
	} else if startupStatus != "" {
		a.setStatus(startupStatus)
	}

	p := tea.NewProgram(a)
	if _, err := p.Run(); err != nil {
		log.Fatalf(ctx, err, "grade sheet app stopped unexpectedly")
	}
}

// loadRoster reads the roster file, creating the scaffold when it does
// not exist yet. A readable but empty roster is a warning, not a
// blocking failure: the app still starts with an empty student list.
func loadRoster(path string) (*roster.Roster, string, *sheeterr.Error) {
	ros, err := roster.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if scErr := roster.CreateScaffold(path); scErr != nil {
				return &roster.Roster{}, "", sheeterr.ErrRosterLoad().SetDebug(scErr)
			}
			return &roster.Roster{}, fmt.Sprintf("no roster found, created %s",
				filepath.Base(path)), nil
		}
		return &roster.Roster{}, "", sheeterr.ErrRosterLoad().SetDebug(err)
	}
	if len(ros.Students) == 0 {
		return ros, "", sheeterr.ErrRosterEmpty()
	}
	return ros, "", nil
}
