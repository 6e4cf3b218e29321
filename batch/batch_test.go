package batch

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"flip/convert"
	"flip/geometry"
)

type recordingReporter struct {
	converting []string
	converted  []string
	failed     []string
	deleteErrs []string
}

func (r *recordingReporter) Converting(out string) {
	r.converting = append(r.converting, out)
}

func (r *recordingReporter) Converted(out string, _ time.Duration) {
	r.converted = append(r.converted, out)
}

func (r *recordingReporter) Failed(reason string) {
	r.failed = append(r.failed, reason)
}

func (r *recordingReporter) DeleteFailed(path string, _ error) {
	r.deleteErrs = append(r.deleteErrs, path)
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), B: 64, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func writeGarbage(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("not an image at all"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func defaultRequest() convert.Request {
	return convert.Request{Scale: 1.0, Filter: geometry.Lanczos3}
}

func TestRunConvertsAllMatchesInOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.png", "a.png", "b.png"} {
		writePNG(t, filepath.Join(dir, name))
	}

	rep := &recordingReporter{}
	summary, err := Run(filepath.Join(dir, "*.png"), defaultRequest(), Options{Reporter: rep})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Matched != 3 || summary.Converted != 3 {
		t.Fatalf("expected 3 matched and converted, got %d/%d", summary.Matched, summary.Converted)
	}
	want := []string{
		filepath.Join(dir, "a.gif"),
		filepath.Join(dir, "b.gif"),
		filepath.Join(dir, "c.gif"),
	}
	if len(rep.converted) != len(want) {
		t.Fatalf("expected %d conversions, got %d", len(want), len(rep.converted))
	}
	for i, out := range want {
		if rep.converted[i] != out {
			t.Fatalf("expected conversion %d to be %s, got %s", i, out, rep.converted[i])
		}
		if _, err := os.Stat(out); err != nil {
			t.Fatalf("expected output %s to exist: %v", out, err)
		}
	}
}

func TestRunContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "good1.png"))
	writeGarbage(t, filepath.Join(dir, "bad.png"))
	writePNG(t, filepath.Join(dir, "good2.png"))

	rep := &recordingReporter{}
	summary, err := Run(filepath.Join(dir, "*.png"), defaultRequest(), Options{Reporter: rep})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Matched != 3 {
		t.Fatalf("expected 3 matched, got %d", summary.Matched)
	}
	if summary.Converted != 2 {
		t.Fatalf("expected 2 converted, got %d", summary.Converted)
	}
	if len(rep.failed) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(rep.failed))
	}
	// Every matched path yields exactly one outcome.
	if len(rep.converted)+len(rep.failed) != summary.Matched {
		t.Fatalf("expected %d outcomes, got %d", summary.Matched, len(rep.converted)+len(rep.failed))
	}
}

func TestRunDestroyKeepsFailedSources(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	bad := filepath.Join(dir, "bad.png")
	writePNG(t, good)
	writeGarbage(t, bad)

	rep := &recordingReporter{}
	summary, err := Run(filepath.Join(dir, "*.png"), defaultRequest(), Options{
		Destroy:  true,
		Reporter: rep,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Converted != 1 {
		t.Fatalf("expected 1 converted, got %d", summary.Converted)
	}
	if _, err := os.Stat(good); !os.IsNotExist(err) {
		t.Fatalf("expected succeeded source to be deleted, stat returned %v", err)
	}
	if _, err := os.Stat(bad); err != nil {
		t.Fatalf("expected failed source to survive: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "good.gif")); err != nil {
		t.Fatalf("expected output to exist: %v", err)
	}
	if len(rep.deleteErrs) != 0 {
		t.Fatalf("expected no delete failures, got %v", rep.deleteErrs)
	}
}

func TestRunWithoutDestroyKeepsSources(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "keep.png")
	writePNG(t, src)

	if _, err := Run(filepath.Join(dir, "*.png"), defaultRequest(), Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("expected source to survive: %v", err)
	}
}

func TestRunZeroMatches(t *testing.T) {
	dir := t.TempDir()

	rep := &recordingReporter{}
	summary, err := Run(filepath.Join(dir, "*.png"), defaultRequest(), Options{Reporter: rep})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Matched != 0 || summary.Converted != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
	if len(rep.failed) != 0 {
		t.Fatalf("expected no failures, got %v", rep.failed)
	}
}

func TestRunRejectsMalformedPattern(t *testing.T) {
	if _, err := Run("[", defaultRequest(), Options{}); err == nil {
		t.Fatal("expected error for malformed pattern")
	}
}

func TestRunDoublestarMatchesNestedFiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writePNG(t, filepath.Join(dir, "top.png"))
	writePNG(t, filepath.Join(sub, "inner.png"))

	summary, err := Run(filepath.Join(dir, "**", "*.png"), defaultRequest(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Matched != 2 || summary.Converted != 2 {
		t.Fatalf("expected 2 matched and converted, got %d/%d", summary.Matched, summary.Converted)
	}
}

func TestRunOutputOverrideNeedsSingleMatch(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"))
	writePNG(t, filepath.Join(dir, "b.png"))

	req := defaultRequest()
	req.Output = filepath.Join(dir, "custom.gif")
	if _, err := Run(filepath.Join(dir, "*.png"), req, Options{}); err == nil {
		t.Fatal("expected error for output override with two matches")
	}
}

func TestRunOutputOverrideWithSingleMatch(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "only.png"))

	req := defaultRequest()
	req.Output = filepath.Join(dir, "custom.gif")
	summary, err := Run(filepath.Join(dir, "*.png"), req, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Converted != 1 {
		t.Fatalf("expected 1 converted, got %d", summary.Converted)
	}
	if _, err := os.Stat(req.Output); err != nil {
		t.Fatalf("expected override output to exist: %v", err)
	}
}
