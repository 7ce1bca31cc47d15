package report

import (
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gradelab/gradesheet/scoring"
	"github.com/klauspost/compress/zip"
)

// DefaultOutDir is where grade sheets are saved, one subdirectory per
// homework.
const DefaultOutDir = "created_files"

type Service struct {
	renderer *Renderer
	outDir   string
	logger   *slog.Logger
}

func NewService(renderer *Renderer, outDir string) *Service {
	if outDir == "" {
		outDir = DefaultOutDir
	}
	return &Service{
		renderer: renderer,
		outDir:   outDir,
		logger:   slog.Default().With("module", "report"),
	}
}

// Generate renders a breakdown without saving it.
func (s *Service) Generate(meta Meta, b *scoring.Breakdown) (*Artifact, error) {
	artifact, err := s.renderer.Render(meta, b)
	if err != nil {
		return nil, fmt.Errorf("failed to render grade sheet: %w", err)
	}
	s.logger.Info("rendered grade sheet",
		"artifact_id", artifact.ID,
		"homework", meta.Homework,
		"student", meta.Student,
		"final", scoring.FormatScore(b.Final))
	return artifact, nil
}

// Save writes the artifact as a PNG under the per-homework directory,
// named after the student, and returns the file path.
func (s *Service) Save(artifact *Artifact) (string, error) {
	dir := filepath.Join(s.outDir, artifact.Homework)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := strings.ReplaceAll(artifact.Student, " ", "_") + ".png"
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create grade sheet file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, artifact.Image); err != nil {
		return "", fmt.Errorf("failed to encode grade sheet: %w", err)
	}

	s.logger.Info("saved grade sheet", "path", path)
	return path, nil
}

// ExportArchive zips every saved grade sheet of a homework into w.
func (s *Service) ExportArchive(homework string, w io.Writer) error {
	dir := filepath.Join(s.outDir, homework)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read homework directory: %w", err)
	}

	zw := zip.NewWriter(w)
	count := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".png") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read grade sheet %s: %w", entry.Name(), err)
		}
		fw, err := zw.Create(entry.Name())
		if err != nil {
			return fmt.Errorf("failed to add %s to archive: %w", entry.Name(), err)
		}
		if _, err := fw.Write(content); err != nil {
			return fmt.Errorf("failed to write %s to archive: %w", entry.Name(), err)
		}
		count++
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}

	s.logger.Info("exported grade sheet archive", "homework", homework, "sheets", count)
	return nil
}
