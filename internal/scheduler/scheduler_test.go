package scheduler

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"testing"

	"junksweep/internal/config"
	"junksweep/internal/history"
	"junksweep/internal/metrics"
)

func init() {
	// Initialize metrics once for all tests
	metrics.Init()
}

func boolPtr(b bool) *bool { return &b }

// testConfig returns a config sweeping one junk directory under a
// temp-dir "volume". The temp dir is not a mount point, so volume
// inspection is advisory.
func testConfig(t *testing.T, apply bool) (*config.Config, string) {
	t.Helper()
	volumeDir := t.TempDir()
	junkDir := filepath.Join(volumeDir, "junk")
	if err := os.MkdirAll(junkDir, 0o755); err != nil {
		t.Fatalf("Failed to create junk dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(junkDir, "stale.tmp"), make([]byte, 1024), 0o644); err != nil {
		t.Fatalf("Failed to create junk file: %v", err)
	}

	return &config.Config{
		Volume:          volumeDir,
		Catalog:         []string{junkDir},
		Apply:           apply,
		PurgeRecycleBin: boolPtr(false),
		RequireVolume:   boolPtr(false),
		Accounting:      config.AccountingCoarse,
	}, filepath.Join(junkDir, "stale.tmp")
}

// TestRunOnceApplyDeletesJunk verifies a full cycle end to end.
func TestRunOnceApplyDeletesJunk(t *testing.T) {
	cfg, junkFile := testConfig(t, true)

	if err := RunOnce(context.Background(), cfg, false, log.Default()); err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}

	if _, err := os.Stat(junkFile); !os.IsNotExist(err) {
		t.Error("Junk file should be deleted by an apply run")
	}
}

// TestRunOnceDryRunFlagWins verifies the -dry-run flag overrides an
// apply-enabled config.
func TestRunOnceDryRunFlagWins(t *testing.T) {
	cfg, junkFile := testConfig(t, true)

	if err := RunOnce(context.Background(), cfg, true, log.Default()); err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}

	if _, err := os.Stat(junkFile); err != nil {
		t.Errorf("Junk file must survive a dry run: %v", err)
	}
}

// TestRunOnceRecordsHistory verifies the run and its targets land in
// the history database.
func TestRunOnceRecordsHistory(t *testing.T) {
	cfg, _ := testConfig(t, true)

	db, err := history.NewRunDB(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Failed to open history database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close history database: %v", err)
		}
	}()

	if err := RunOnceWithDB(context.Background(), cfg, false, log.Default(), db); err != nil {
		t.Fatalf("RunOnceWithDB failed: %v", err)
	}

	runs, err := db.RecentRuns(1)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 recorded run, got %d", len(runs))
	}
	if runs[0].FoundBytes != 1024 {
		t.Errorf("Recorded FoundBytes = %d, expected 1024", runs[0].FoundBytes)
	}
	if runs[0].RemovedBytes != 1024 {
		t.Errorf("Recorded RemovedBytes = %d, expected 1024", runs[0].RemovedBytes)
	}

	targets, err := db.RecentTargets(10)
	if err != nil {
		t.Fatalf("RecentTargets failed: %v", err)
	}
	if len(targets) != 1 {
		t.Errorf("Expected 1 recorded target, got %d", len(targets))
	}
}

// TestRunOnceRequiredVolumeFails verifies require_volume makes a failed
// inspection fatal.
func TestRunOnceRequiredVolumeFails(t *testing.T) {
	cfg, _ := testConfig(t, false)
	cfg.Volume = filepath.Join(t.TempDir(), "no-such-volume")
	cfg.RequireVolume = boolPtr(true)

	if err := RunOnce(context.Background(), cfg, false, log.Default()); err == nil {
		t.Error("Expected error when the required volume cannot be inspected")
	}
}

// TestRunOnceCancelledContext verifies a cancelled context short-circuits.
func TestRunOnceCancelledContext(t *testing.T) {
	cfg, junkFile := testConfig(t, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := RunOnce(ctx, cfg, false, log.Default()); err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(junkFile); err != nil {
		t.Errorf("Nothing should be deleted after cancellation: %v", err)
	}
}

// TestRunOnceNilConfig verifies the guard.
func TestRunOnceNilConfig(t *testing.T) {
	if err := RunOnce(context.Background(), nil, false, log.Default()); err == nil {
		t.Error("Expected error for nil config")
	}
}

// TestRunLoopStopsOnCancel verifies the ticker loop exits with the
// context.
func TestRunLoopStopsOnCancel(t *testing.T) {
	cfg, _ := testConfig(t, false)
	cfg.IntervalMinutes = 60

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, cfg, false, log.Default())
	}()

	cancel()
	if err := <-done; err != context.Canceled {
		t.Errorf("Expected context.Canceled from loop, got %v", err)
	}
}
