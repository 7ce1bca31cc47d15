// Package clipboard copies grade-sheet output to the system clipboard.
// Text works everywhere; image copy is available on Windows only, where
// the sheet is placed as a device-independent bitmap.
package clipboard

import (
	"errors"
	"fmt"
	"image"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned by CopyImage on platforms without native
// image clipboard support.
var ErrUnsupported = errors.New("image clipboard is not supported on this platform")

// CopyText places plain text on the system clipboard.
func CopyText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write text to clipboard: %w", err)
	}
	return nil
}

// CopyImage places an image on the system clipboard. Returns
// ErrUnsupported where no native image clipboard exists; callers are
// expected to fall back to the saved file.
func CopyImage(img image.Image) error {
	return copyImage(img)
}
