//go:build !windows

package clipboard

import "image"

func copyImage(_ image.Image) error {
	return ErrUnsupported
}
