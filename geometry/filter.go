package geometry

import (
	"fmt"

	"github.com/disintegration/imaging"
)

// Filter selects the resampling algorithm used when a frame is rescaled.
// The set is closed; the converter passes the selector through opaquely.
type Filter int

const (
	NearestNeighbor Filter = iota
	Triangle
	CatmullRom
	Gaussian
	Lanczos3
)

var filterNames = []string{
	NearestNeighbor: "nearest",
	Triangle:        "triangle",
	CatmullRom:      "catmull-rom",
	Gaussian:        "gaussian",
	Lanczos3:        "lanczos3",
}

// ParseFilter resolves a filter name from the CLI.
func ParseFilter(name string) (Filter, error) {
	for f, n := range filterNames {
		if n == name {
			return Filter(f), nil
		}
	}
	return 0, fmt.Errorf(
		"unknown filter '%s', expected one of nearest, triangle, catmull-rom, gaussian, lanczos3", name,
	)
}

func (f Filter) String() string {
	if int(f) < 0 || int(f) >= len(filterNames) {
		return "unknown"
	}
	return filterNames[f]
}

// Resample maps the selector onto the imaging kernel it names.
func (f Filter) Resample() imaging.ResampleFilter {
	switch f {
	case NearestNeighbor:
		return imaging.NearestNeighbor
	case Triangle:
		return imaging.Linear
	case CatmullRom:
		return imaging.CatmullRom
	case Gaussian:
		return imaging.Gaussian
	default:
		return imaging.Lanczos
	}
}
