// Package geometry holds the pure crop and resize math of the conversion
// pipeline. It computes dimensions only; the actual pixel work happens in
// the convert package.
package geometry

import (
	"fmt"
	"image"
	"math"
)

// MaxScale caps the uniform scale factor so a stray argument cannot blow up
// memory with an absurdly large frame.
const MaxScale = 10.0

// minDim is the smallest encodable edge. The gif encoder cannot represent a
// zero-sized raster.
const minDim = 2

// CropRect returns the rectangle left after trimming margin pixels off each
// of the four sides of a width×height image. A margin of 0 is a pass-through.
// The crop is all-or-nothing: if either axis would be fully consumed the
// whole operation is rejected and the image stays untouched.
func CropRect(width, height, margin int) (image.Rectangle, error) {
	if margin < 0 {
		return image.Rectangle{}, fmt.Errorf("crop margin must not be negative, got %d", margin)
	}
	if 2*margin >= width || 2*margin >= height {
		return image.Rectangle{}, fmt.Errorf(
			"crop margin %dpx leaves nothing of a %dx%d image", margin, width, height,
		)
	}
	return image.Rect(margin, margin, width-margin, height-margin), nil
}

// ScaledSize returns the dimensions after applying a uniform scale factor,
// rounded to the nearest pixel and floored at 2 on each axis independently.
// Rejecting non-positive scale factors is the caller's concern.
func ScaledSize(width, height int, scale float64) (int, int) {
	w := int(math.Round(float64(width) * scale))
	h := int(math.Round(float64(height) * scale))
	if w < minDim {
		w = minDim
	}
	if h < minDim {
		h = minDim
	}
	return w, h
}

// ClampScale caps a scale factor at MaxScale. There is no lower clamp.
func ClampScale(scale float64) float64 {
	if scale > MaxScale {
		return MaxScale
	}
	return scale
}
