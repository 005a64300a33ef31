package scheduler

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"junksweep/internal/config"
	"junksweep/internal/history"
	"junksweep/internal/metrics"
	"junksweep/internal/pacer"
	"junksweep/internal/reclaim"
	"junksweep/internal/safety"
	"junksweep/internal/sink"
	"junksweep/internal/volume"
)

func RunOnce(ctx context.Context, cfg *config.Config, dryRun bool, logger *log.Logger) error {
	return RunOnceWithDB(ctx, cfg, dryRun, logger, nil)
}

// RunOnceWithDB executes one full reclaim cycle: inspect the volume,
// sweep the catalog, empty the recycle bin, and file the run into the
// history database. dryRun forces a measuring pass even when the config
// enables apply.
func RunOnceWithDB(ctx context.Context, cfg *config.Config, dryRun bool, logger *log.Logger, db *history.RunDB) error {
	if logger == nil {
		logger = log.Default()
	}
	if cfg == nil {
		return errors.New("nil config")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	start := time.Now()

	info, err := volume.Inspect(cfg.Volume)
	if err != nil {
		if cfg.VolumeRequired() {
			metrics.ErrorsTotal.Inc()
			return err
		}
		logger.Printf("volume inspection failed (advisory): %v", err)
	} else {
		metrics.UpdateVolume(info)
		logger.Printf("volume %s: total=%d bytes free=%d bytes (%.1f%% used)",
			info.Volume, info.TotalBytes, info.FreeBytes, info.UsedPercent)
	}

	apply := cfg.Apply && !dryRun

	opts := reclaim.Options{
		Apply:           apply,
		OlderThan:       cfg.OlderThan(),
		PurgeRecycleBin: cfg.PurgeBin(),
		Accounting:      cfg.AccountingMode(),
	}

	var actionSink sink.Sink
	if cfg.LogSinkPath != "" {
		fileSink, serr := sink.NewFile(cfg.LogSinkPath, os.Stdout)
		if serr != nil {
			logger.Printf("log sink unavailable, actions will not be journaled: %v", serr)
		} else {
			defer fileSink.Close()
			actionSink = fileSink
		}
	}

	r := reclaim.New(opts, actionSink)
	r.SetValidator(safety.NewValidator(nil, cfg.ProtectedPaths))
	if cfg.PaceCPUPercent > 0 {
		r.SetPacer(pacer.New(cfg.PaceCPUPercent))
	}

	var runID int64
	if db != nil {
		runID, err = db.StartRun(cfg.Volume, !apply)
		if err != nil {
			logger.Printf("failed to start history run: %v", err)
			runID = 0
		} else {
			r.SetRecorder(db.Recorder(runID))
		}
	}

	report, err := r.Run(cfg.Volume, cfg.Entries())
	if err != nil {
		metrics.ErrorsTotal.Inc()
		return err
	}

	elapsed := time.Since(start)
	metrics.RecordRun(r.Totals(), elapsed)

	if db != nil && runID != 0 {
		if err := db.FinishRun(runID, r.Totals(), elapsed); err != nil {
			logger.Printf("failed to finish history run %d: %v", runID, err)
		}
	}

	logger.Printf("run complete: found=%.2f GiB removed=%.2f GiB not_removed=%.2f GiB duration=%.3fs",
		report.JunkFound, report.JunkRemoved, report.JunkNotRemoved, elapsed.Seconds())
	return nil
}

func Run(ctx context.Context, cfg *config.Config, dryRun bool, logger *log.Logger) error {
	return RunWithDB(ctx, cfg, dryRun, logger, nil)
}

// RunWithDB runs one cycle immediately, then repeats on the configured
// interval until the context is cancelled.
func RunWithDB(ctx context.Context, cfg *config.Config, dryRun bool, logger *log.Logger, db *history.RunDB) error {
	if logger == nil {
		logger = log.Default()
	}
	if cfg == nil {
		return errors.New("nil config")
	}

	if err := RunOnceWithDB(ctx, cfg, dryRun, logger, db); err != nil {
		return err
	}

	ticker := time.NewTicker(cfg.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Println("scheduler shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := RunOnceWithDB(ctx, cfg, dryRun, logger, db); err != nil {
				logger.Printf("error running cycle: %v", err)
			}
		}
	}
}
