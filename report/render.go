package report

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gradelab/gradesheet/scoring"
	"github.com/nfnt/resize"
	"github.com/wailsapp/mimetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	sheetWidth  = 1200
	sheetHeight = 1500
)

// Meta is the identifying information drawn on the sheet header.
type Meta struct {
	Homework string
	Student  string
	Group    string
	Variant  string

	// WorkVariantCap, when positive, adds the "work variant capped at
	// N points" line shown in double grading mode.
	WorkVariantCap float64
}

// Artifact is one rendered grade sheet, not yet saved.
type Artifact struct {
	ID       uuid.UUID
	Homework string
	Student  string
	Image    image.Image
}

type Renderer struct {
	fonts    Fonts
	emojiDir string
}

// NewRenderer builds a renderer drawing with the given faces. emojiDir
// may be empty; emoji then render through the fallback face.
func NewRenderer(fonts Fonts, emojiDir string) *Renderer {
	return &Renderer{fonts: fonts, emojiDir: emojiDir}
}

// Render rasterizes a score breakdown into a grade-sheet image.
func (r *Renderer) Render(meta Meta, b *scoring.Breakdown) (*Artifact, error) {
	img := image.NewRGBA(image.Rect(0, 0, sheetWidth, sheetHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	c := &canvas{img: img, emojiDir: r.emojiDir, fonts: r.fonts}

	title := "Grade sheet"
	titleWidth := font.MeasureString(r.fonts.Title, title).Ceil()
	c.y = 20
	c.drawLine((sheetWidth-titleWidth)/2, title, r.fonts.Title)
	c.y += 20

	c.drawLine(50, fmt.Sprintf("Student: %s    Group: %s    Variant: %s",
		meta.Student, meta.Group, meta.Variant), r.fonts.Text)
	c.y += 10

	if meta.WorkVariantCap > 0 {
		c.drawLine(50, fmt.Sprintf("Work variant: capped at %s points",
			scoring.FormatScore(meta.WorkVariantCap)), r.fonts.Text)
		c.y += 10
	}

	onTime := "Yes"
	if !b.OnTime {
		onTime = "No"
	}
	c.drawLine(50, fmt.Sprintf("Submitted on time: %s    Days late: %d",
		onTime, b.DelayDays), r.fonts.Text)
	c.y += 20

	for _, sec := range b.Sections {
		c.drawLine(50, sec.Title, r.fonts.Header)
		c.y += 10
		c.drawLine(70, fmt.Sprintf("Points: %s", scoring.FormatScore(sec.Score)), r.fonts.Text)
		c.y += 5
		for _, reason := range sec.Reasons {
			c.drawLine(90, "- "+reason, r.fonts.Text)
			c.y += 5
		}
		c.y += 10
	}

	c.drawLine(50, "Additional penalties:", r.fonts.Header)
	c.y += 10
	if len(b.PenaltyComments) > 0 {
		for _, comment := range b.PenaltyComments {
			c.drawLine(70, "- "+comment, r.fonts.Text)
			c.y += 5
		}
	} else {
		c.drawLine(70, "None", r.fonts.Text)
		c.y += 5
	}
	c.y += 10

	c.drawLine(50, "And one more thing:", r.fonts.Header)
	c.y += 10
	if len(b.RewardComments) > 0 {
		for _, reward := range b.RewardComments {
			c.drawLine(70, reward, r.fonts.Text)
			c.y += 5
		}
	} else {
		c.drawLine(70, "None", r.fonts.Text)
		c.y += 5
	}
	c.y += 10

	c.drawRule(50, sheetWidth-50)
	c.y += 10

	c.drawLine(50, fmt.Sprintf("Final grade: %s out of %s",
		scoring.FormatScore(b.Final), scoring.FormatScore(b.DisplayCap)), r.fonts.Header)
	c.y += 20

	if b.Comment != "" {
		c.drawLine(50, "Comment:", r.fonts.Header)
		c.y += 10
		for _, line := range strings.Split(b.Comment, "\n") {
			c.drawLine(70, line, r.fonts.Text)
			c.y += 5
		}
	}

	return &Artifact{
		ID:       uuid.New(),
		Homework: meta.Homework,
		Student:  meta.Student,
		Image:    img,
	}, nil
}

// canvas tracks the vertical cursor while blocks are drawn top down.
type canvas struct {
	img      *image.RGBA
	fonts    Fonts
	emojiDir string
	y        int
}

// drawLine renders one line at the given left offset, drawing emoji
// runs from bitmap assets when present, and advances the cursor.
func (c *canvas) drawLine(x int, text string, face font.Face) {
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineHeight := metrics.Height.Ceil()

	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}

	curX := x
	for _, seg := range splitEmojiSegments(text) {
		if seg.emoji {
			if c.drawEmojiAsset(curX, seg.text, lineHeight) {
				curX += lineHeight
				continue
			}
			d.Face = c.fonts.Emoji
		} else {
			d.Face = face
		}
		d.Dot = fixed.P(curX, c.y+ascent)
		d.DrawString(seg.text)
		curX += font.MeasureString(d.Face, seg.text).Ceil()
	}

	c.y += lineHeight + 5
}

// drawEmojiAsset pastes a bitmap emoji scaled to the line height.
// Returns false when no usable asset exists.
func (c *canvas) drawEmojiAsset(x int, emoji string, lineHeight int) bool {
	if c.emojiDir == "" {
		return false
	}
	content, err := os.ReadFile(filepath.Join(c.emojiDir, emojiAssetName(emoji)))
	if err != nil {
		return false
	}

	var decoded image.Image
	mType := mimetype.Detect(content)
	if mType == nil {
		return false
	}
	switch mType.String() {
	case "image/png":
		decoded, err = png.Decode(bytes.NewReader(content))
	case "image/jpeg":
		decoded, err = jpeg.Decode(bytes.NewReader(content))
	default:
		return false
	}
	if err != nil {
		return false
	}

	scaled := resize.Resize(uint(lineHeight), uint(lineHeight), decoded, resize.Lanczos3)
	target := image.Rect(x, c.y, x+lineHeight, c.y+lineHeight)
	draw.Draw(c.img, target, scaled, scaled.Bounds().Min, draw.Over)
	return true
}

func (c *canvas) drawRule(x1, x2 int) {
	for x := x1; x <= x2; x++ {
		c.img.Set(x, c.y, color.Black)
	}
	c.y += 1
}
