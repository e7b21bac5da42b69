package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Keav/smbfix/internal/clock"
	"github.com/Keav/smbfix/internal/config"
	"github.com/Keav/smbfix/internal/fsops"
	"github.com/Keav/smbfix/internal/planner"
	"github.com/Keav/smbfix/internal/platform"
	"github.com/Keav/smbfix/internal/report"
)

// recordingRepairer records every path handed to the repair pass.
type recordingRepairer struct {
	paths []string
}

func (r *recordingRepairer) Repair(_ context.Context, path string, _ bool) {
	r.paths = append(r.paths, path)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func testEngine(profile platform.Profile, cfg *config.Config, repairer Repairer, sink report.Sink) *Engine {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if sink == nil {
		sink = report.Discard{}
	}
	return New(fsops.NewRealFS(), profile, cfg, repairer, sink, clock.NewFakeClock(time.Unix(0, 0)))
}

func TestEngine_Scan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bad:name.txt"), "x")
	writeFile(t, filepath.Join(root, "fine.txt"), "x")

	eng := testEngine(platform.Profile{Kind: platform.ProfileLimited, OS: "linux"}, nil, nil, nil)

	result, err := eng.Scan(context.Background(), &ScanRequest{Root: root})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if result.RunID == "" {
		t.Error("Scan() returned empty run ID")
	}
	if len(result.Plan.Operations) != 1 {
		t.Fatalf("got %d operations, want 1", len(result.Plan.Operations))
	}
	if want := filepath.Join(root, "bad-name.txt"); result.Plan.Operations[0].TargetPath != want {
		t.Errorf("target = %s, want %s", result.Plan.Operations[0].TargetPath, want)
	}
}

func TestEngine_ScanErrors(t *testing.T) {
	eng := testEngine(platform.Profile{Kind: platform.ProfileLimited, OS: "linux"}, nil, nil, nil)

	t.Run("missing root", func(t *testing.T) {
		_, err := eng.Scan(context.Background(), &ScanRequest{
			Root: filepath.Join(t.TempDir(), "nope"),
		})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("root is a file", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "f.txt"), "x")

		_, err := eng.Scan(context.Background(), &ScanRequest{
			Root: filepath.Join(root, "f.txt"),
		})
		if !errors.Is(err, ErrNotDirectory) {
			t.Errorf("error = %v, want ErrNotDirectory", err)
		}
	})
}

func TestEngine_ScanRepairPass(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sub", "f.txt"), "x")

	full := platform.Profile{Kind: platform.ProfileFull, OS: "darwin"}

	t.Run("repairs root and every visited entry", func(t *testing.T) {
		rec := &recordingRepairer{}
		eng := testEngine(full, nil, rec, nil)

		if _, err := eng.Scan(context.Background(), &ScanRequest{Root: root}); err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		if len(rec.paths) != 3 {
			t.Errorf("repaired paths = %v, want root, sub and f.txt", rec.paths)
		}
		abs, _ := filepath.Abs(root)
		if len(rec.paths) > 0 && rec.paths[0] != abs {
			t.Errorf("first repaired path = %s, want root %s", rec.paths[0], abs)
		}
	})

	t.Run("no repair on limited profile", func(t *testing.T) {
		rec := &recordingRepairer{}
		eng := testEngine(platform.Profile{Kind: platform.ProfileLimited, OS: "linux"}, nil, rec, nil)

		if _, err := eng.Scan(context.Background(), &ScanRequest{Root: root}); err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		if len(rec.paths) != 0 {
			t.Errorf("repaired paths = %v, want none", rec.paths)
		}
	})

	t.Run("no repair when disabled", func(t *testing.T) {
		rec := &recordingRepairer{}
		eng := testEngine(full, &config.Config{NoRepair: true}, rec, nil)

		if _, err := eng.Scan(context.Background(), &ScanRequest{Root: root}); err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		if len(rec.paths) != 0 {
			t.Errorf("repaired paths = %v, want none", rec.paths)
		}
	})
}

func TestEngine_Apply(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bad:name.txt"), "x")

	sink := &report.Memory{}
	eng := testEngine(platform.Profile{Kind: platform.ProfileLimited, OS: "linux"}, nil, nil, sink)

	scanResult, err := eng.Scan(context.Background(), &ScanRequest{Root: root})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	applyResult, err := eng.Apply(context.Background(), &ApplyRequest{Plan: scanResult.Plan})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if applyResult.Applied() != 1 || applyResult.Skipped() != 0 || applyResult.Failed() != 0 {
		t.Errorf("counts = %d/%d/%d, want 1/0/0",
			applyResult.Applied(), applyResult.Skipped(), applyResult.Failed())
	}

	if _, err := os.Lstat(filepath.Join(root, "bad-name.txt")); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}
	if len(sink.Infos) == 0 {
		t.Error("apply reported nothing")
	}
}

func TestEngine_ApplySkippedCounted(t *testing.T) {
	root := t.TempDir()

	plan := planner.NewPlan(root)
	plan.AddOperation(planner.Operation{
		Kind:         planner.OpRename,
		OriginalPath: filepath.Join(root, "vanished.txt"),
		TargetPath:   filepath.Join(root, "vanished2.txt"),
	})

	sink := &report.Memory{}
	eng := testEngine(platform.Profile{Kind: platform.ProfileLimited, OS: "linux"}, nil, nil, sink)

	result, err := eng.Apply(context.Background(), &ApplyRequest{Plan: plan})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if result.Skipped() != 1 {
		t.Errorf("Skipped() = %d, want 1", result.Skipped())
	}
	if len(sink.Warns) == 0 {
		t.Error("skip was not reported")
	}
}

func TestEngine_ApplyCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bad:name.txt"), "x")

	eng := testEngine(platform.Profile{Kind: platform.ProfileLimited, OS: "linux"}, nil, nil, nil)
	scanResult, err := eng.Scan(context.Background(), &ScanRequest{Root: root})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := eng.Apply(ctx, &ApplyRequest{Plan: scanResult.Plan})
	if err == nil {
		t.Error("Apply() with cancelled context returned nil error")
	}
	if result == nil {
		t.Fatal("Apply() returned nil result on cancellation")
	}
	if result.Applied() != 0 {
		t.Errorf("Applied() = %d, want 0", result.Applied())
	}
}
