package convert

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

const maxPaletteColors = 256

// encodeFrame writes frame as a gif holding exactly one animation frame.
// The container carries no looping or timing beyond the encoder's minimums.
func encodeFrame(w io.Writer, frame *image.NRGBA) error {
	return gif.EncodeAll(w, &gif.GIF{
		Image: []*image.Paletted{palettize(frame)},
		Delay: []int{0},
	})
}

// palettize reduces a four-channel RGBA frame to a median-cut palette with
// Floyd-Steinberg dithering.
func palettize(frame *image.NRGBA) *image.Paletted {
	quantizer := quantize.MedianCutQuantizer{AddTransparent: true}
	palette := quantizer.Quantize(make(color.Palette, 0, maxPaletteColors), frame)

	paletted := image.NewPaletted(frame.Rect, palette)
	draw.FloydSteinberg.Draw(paletted, paletted.Rect, frame, image.Point{})
	return paletted
}
