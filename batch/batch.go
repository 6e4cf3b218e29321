// Package batch drives the converter over every file a glob pattern matches.
package batch

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"flip/convert"
)

// Reporter receives progress from a running batch. The CLI shell implements
// it; the driver itself never prints.
type Reporter interface {
	Converting(outPath string)
	Converted(outPath string, elapsed time.Duration)
	Failed(reason string)
	DeleteFailed(path string, err error)
}

type Options struct {
	// Destroy removes the source of every successful conversion once the
	// whole loop has finished.
	Destroy  bool
	Reporter Reporter
}

// Summary tallies one finished batch. Elapsed spans glob expansion, all
// conversions and all deletions.
type Summary struct {
	Matched   int
	Converted int
	Elapsed   time.Duration
}

// Run expands pattern, converts every matched file in order and, when
// requested, removes the sources of the successful conversions. Per-file
// failures are reported and the loop continues; only a malformed pattern or
// a misused output override abort before any file is touched.
func Run(pattern string, req convert.Request, opts Options) (Summary, error) {
	start := time.Now()

	paths, err := expand(pattern)
	if err != nil {
		return Summary{}, err
	}
	if req.Output != "" && len(paths) != 1 {
		return Summary{}, fmt.Errorf(
			"output path override needs exactly one matched file, pattern '%s' matched %d",
			pattern, len(paths),
		)
	}

	reporter := opts.Reporter
	if reporter == nil {
		reporter = discard{}
	}

	var destroyList []string
	converted := 0
	for _, path := range paths {
		outPath := req.Output
		if outPath == "" {
			outPath = convert.OutputPath(path)
		}
		reporter.Converting(outPath)

		outcome := convert.Convert(path, req)
		if !outcome.OK() {
			reporter.Failed(outcome.Reason)
			continue
		}
		reporter.Converted(outcome.Output, outcome.Elapsed)
		converted++
		destroyList = append(destroyList, outcome.Source)
	}

	if opts.Destroy {
		for _, path := range destroyList {
			if err := os.Remove(path); err != nil {
				reporter.DeleteFailed(path, err)
			}
		}
	}

	return Summary{
		Matched:   len(paths),
		Converted: converted,
		Elapsed:   time.Since(start),
	}, nil
}

// expand resolves the glob into real files in a stable lexicographic order.
// Entries the walk cannot resolve are skipped; they are not conversion
// failures.
func expand(pattern string) ([]string, error) {
	paths, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		if errors.Is(err, doublestar.ErrBadPattern) {
			return nil, fmt.Errorf("bad glob pattern '%s': %w", pattern, err)
		}
		return nil, fmt.Errorf("failed to expand pattern '%s': %w", pattern, err)
	}
	sort.Strings(paths)
	return paths, nil
}

type discard struct{}

func (discard) Converting(string)               {}
func (discard) Converted(string, time.Duration) {}
func (discard) Failed(string)                   {}
func (discard) DeleteFailed(string, error)      {}
