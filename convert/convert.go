// Package convert turns one still image into a single-frame gif on disk.
package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	// Widen the decode registry beyond what imaging registers itself.
	_ "golang.org/x/image/webp"

	"flip/geometry"
)

// Request carries the per-batch conversion settings. It is identical for
// every file in a batch except the source path handed to Convert.
type Request struct {
	Scale  float64
	Crop   int
	Filter geometry.Filter
	// Output overrides the derived output path. The batch driver only sets
	// it when the pattern matched exactly one file.
	Output string
}

// Outcome is the per-file result. Reason is empty on success; on success the
// output file exists and is non-empty at the moment the Outcome is emitted.
type Outcome struct {
	Source  string
	Output  string
	Elapsed time.Duration
	Reason  string
}

func (o Outcome) OK() bool { return o.Reason == "" }

func failure(source, format string, args ...any) Outcome {
	return Outcome{Source: source, Reason: fmt.Sprintf(format, args...)}
}

// OutputPath derives the gif path written next to src by swapping the
// extension.
func OutputPath(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + ".gif"
}

// Convert runs the whole pipeline for one file: decode, crop, resize,
// palettize, encode. Every error folds into the returned Outcome; nothing
// escapes this boundary and the process is never terminated from here.
func Convert(path string, req Request) Outcome {
	start := time.Now()

	img, err := imaging.Open(path)
	if err != nil {
		return failure(path, "failed to open image '%s': %v", path, err)
	}

	if req.Crop > 0 {
		bounds := img.Bounds()
		rect, err := geometry.CropRect(bounds.Dx(), bounds.Dy(), req.Crop)
		if err != nil {
			return failure(path, "cannot crop '%s': %v", path, err)
		}
		img = imaging.Crop(img, rect)
	}

	bounds := img.Bounds()
	width, height := geometry.ScaledSize(bounds.Dx(), bounds.Dy(), req.Scale)
	frame := imaging.Resize(img, width, height, req.Filter.Resample())

	outPath := req.Output
	if outPath == "" {
		outPath = OutputPath(path)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return failure(path, "failed to create output file '%s': %v", outPath, err)
	}

	if err := encodeFrame(out, frame); err != nil {
		out.Close()
		// A truncated gif must not survive as output.
		os.Remove(outPath)
		return failure(path, "failed to encode image '%s': %v", path, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(outPath)
		return failure(path, "failed to write output file '%s': %v", outPath, err)
	}

	return Outcome{Source: path, Output: outPath, Elapsed: time.Since(start)}
}
