package report

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Fonts holds the faces used on the grade sheet: a large title face, a
// bold block-header face, a regular text face and an emoji fallback.
type Fonts struct {
	Title  font.Face
	Header font.Face
	Text   font.Face
	Emoji  font.Face
}

const (
	titleFontSize  = 36
	headerFontSize = 24
	textFontSize   = 18
)

// LoadFonts loads the sheet faces from TTF files in dir, falling back
// to the embedded Go fonts for any file that is absent or malformed.
// Passing an empty dir selects the embedded fonts outright.
func LoadFonts(dir string) (Fonts, error) {
	boldFallback, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return Fonts{}, fmt.Errorf("failed to parse embedded bold font: %w", err)
	}
	regularFallback, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return Fonts{}, fmt.Errorf("failed to parse embedded regular font: %w", err)
	}

	face := func(filename string, fallback *opentype.Font, size float64) (font.Face, error) {
		f := fallback
		if dir != "" {
			content, err := os.ReadFile(filepath.Join(dir, filename))
			if err == nil {
				parsed, perr := opentype.Parse(content)
				if perr != nil {
					log.Printf("Error parsing font %s: %v\n", filename, perr)
				} else {
					f = parsed
				}
			}
		}
		return opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}

	fonts := Fonts{}
	if fonts.Title, err = face("gilroy-black.ttf", boldFallback, titleFontSize); err != nil {
		return Fonts{}, fmt.Errorf("failed to load title font: %w", err)
	}
	if fonts.Header, err = face("gilroy-bold.ttf", boldFallback, headerFontSize); err != nil {
		return Fonts{}, fmt.Errorf("failed to load header font: %w", err)
	}
	if fonts.Text, err = face("gilroy-regular.ttf", regularFallback, textFontSize); err != nil {
		return Fonts{}, fmt.Errorf("failed to load text font: %w", err)
	}
	if fonts.Emoji, err = face("segoe-ui-emoji.ttf", regularFallback, textFontSize); err != nil {
		return Fonts{}, fmt.Errorf("failed to load emoji font: %w", err)
	}
	return fonts, nil
}
