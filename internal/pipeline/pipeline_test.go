package pipeline

import (
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/imgpress-cli/internal/profile"
)

func testProfile() profile.Profile {
	return profile.Profile{Name: "test", Quality: 60, MaxDimension: 100}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 100, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

func runPipeline(t *testing.T, cfg Config) *Result {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = quietLogger()
	}
	res, err := New(cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return res
}

func TestRunEndToEnd(t *testing.T) {
	root := t.TempDir()
	writeTestPNG(t, filepath.Join(root, "one.png"), 400, 200)
	writeTestPNG(t, filepath.Join(root, "sub", "two.png"), 50, 50)
	// Corrupt candidate: image extension, garbage bytes.
	if err := os.WriteFile(filepath.Join(root, "broken.jpg"), []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	res := runPipeline(t, Config{InputDir: root, Profile: testProfile()})

	if res.Total != 3 || res.Processed != 2 || res.Failed != 1 || res.Skipped != 0 {
		t.Fatalf("counts: total=%d processed=%d failed=%d skipped=%d",
			res.Total, res.Processed, res.Failed, res.Skipped)
	}
	if len(res.Failures) != 1 || res.Failures[0].RelPath != "broken.jpg" {
		t.Errorf("failures: %v", res.Failures)
	}
	if res.Failures[0].Err == nil {
		t.Error("failure cause missing")
	}

	// Structure mirrored, extension normalized, resize applied.
	out := filepath.Join(root, OutputDirName, "one.jpg")
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	cfgImg, err := jpeg.DecodeConfig(f)
	f.Close()
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if cfgImg.Width != 100 || cfgImg.Height != 50 {
		t.Errorf("output dimensions: got %dx%d, want 100x50", cfgImg.Width, cfgImg.Height)
	}
	if _, err := os.Stat(filepath.Join(root, OutputDirName, "sub", "two.jpg")); err != nil {
		t.Errorf("nested output missing: %v", err)
	}

	if res.InputBytes <= 0 || res.OutputBytes <= 0 {
		t.Errorf("byte accounting: in=%d out=%d", res.InputBytes, res.OutputBytes)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeTestPNG(t, filepath.Join(root, "a.png"), 30, 30)
	writeTestPNG(t, filepath.Join(root, "b", "c.png"), 30, 30)

	first := runPipeline(t, Config{InputDir: root, Profile: testProfile()})
	if first.Processed != 2 {
		t.Fatalf("first run processed: %d", first.Processed)
	}

	second := runPipeline(t, Config{InputDir: root, Profile: testProfile()})
	if second.Skipped != second.Total || second.Processed != 0 {
		t.Errorf("second run: total=%d processed=%d skipped=%d",
			second.Total, second.Processed, second.Skipped)
	}
}

func TestRunEmptyFolder(t *testing.T) {
	res := runPipeline(t, Config{InputDir: t.TempDir(), Profile: testProfile()})
	if res.Total != 0 || res.Processed != 0 || res.Failed != 0 {
		t.Errorf("empty folder: %+v", res)
	}
}

func TestRunMissingFolder(t *testing.T) {
	cfg := Config{
		InputDir: filepath.Join(t.TempDir(), "does-not-exist"),
		Profile:  testProfile(),
		Logger:   quietLogger(),
	}
	if _, err := New(cfg).Run(context.Background()); err == nil {
		t.Fatal("expected error for missing input folder")
	}
}

func TestRunRejectsInvalidConfigBeforeTouchingFiles(t *testing.T) {
	root := t.TempDir()
	writeTestPNG(t, filepath.Join(root, "a.png"), 30, 30)

	for _, prof := range []profile.Profile{
		{Name: "bad", Quality: 150, MaxDimension: 1920},
		{Name: "bad", Quality: -5, MaxDimension: 1920},
		{Name: "bad", Quality: 0, MaxDimension: 1920},
		{Name: "bad", Quality: 65, MaxDimension: 0},
		{Name: "bad", Quality: 65, MaxDimension: -10},
	} {
		cfg := Config{InputDir: root, Profile: prof, Logger: quietLogger()}
		if _, err := New(cfg).Run(context.Background()); err == nil {
			t.Errorf("profile %+v: expected validation error", prof)
		}
	}

	if _, err := os.Stat(filepath.Join(root, OutputDirName)); !os.IsNotExist(err) {
		t.Error("output folder created despite invalid config")
	}
}

func TestRunProgressEvents(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		writeTestPNG(t, filepath.Join(root, name), 20, 20)
	}

	var events []int
	res := runPipeline(t, Config{
		InputDir: root,
		Profile:  testProfile(),
		Workers:  4,
		OnProgress: func(completed, total int, name string) {
			if total != 3 {
				t.Errorf("total in event: got %d", total)
			}
			if name == "" {
				t.Error("empty name in event")
			}
			events = append(events, completed)
		},
	})

	if res.Processed != 3 || len(events) != 3 {
		t.Fatalf("processed=%d events=%d", res.Processed, len(events))
	}
	// Completion numbering is contiguous regardless of worker order.
	for i, c := range events {
		if c != i+1 {
			t.Errorf("event %d: completed=%d", i, c)
		}
	}
}

func TestRunDryRun(t *testing.T) {
	root := t.TempDir()
	writeTestPNG(t, filepath.Join(root, "a.png"), 20, 20)

	res := runPipeline(t, Config{InputDir: root, Profile: testProfile(), DryRun: true})
	if res.Total != 1 || res.Processed != 0 {
		t.Errorf("dry run counts: %+v", res)
	}
	if _, err := os.Stat(filepath.Join(root, OutputDirName)); !os.IsNotExist(err) {
		t.Error("dry run wrote output")
	}
}

func TestRunCancelledContext(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 5; i++ {
		writeTestPNG(t, filepath.Join(root, string(rune('a'+i))+".png"), 20, 20)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := Config{InputDir: root, Profile: testProfile(), Logger: quietLogger()}
	res, err := New(cfg).Run(ctx)
	if err != nil {
		t.Fatalf("cancelled run should return the partial result, got %v", err)
	}
	if res.Processed == 5 {
		t.Log("all items finished before cancellation took effect")
	}
}
