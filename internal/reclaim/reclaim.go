// Package reclaim walks a catalog of known junk locations on one
// volume, measures and conditionally deletes each target, verifies
// outcomes, and accumulates a found / removed / not-removed report.
package reclaim

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"junksweep/internal/catalog"
	"junksweep/internal/fsops"
	"junksweep/internal/recycle"
	"junksweep/internal/safety"
	"junksweep/internal/sink"
	"junksweep/internal/volume"
)

// Actions recorded to the run history.
const (
	ActionDelete = "DELETE"
	ActionDryRun = "DRY_RUN"
	ActionSkip   = "SKIP"
	ActionFailed = "FAILED"
	ActionPurge  = "PURGE"
)

// Options configure one reclaim run.
type Options struct {
	// Apply enables deletion; false is a dry run that only measures.
	Apply bool

	// OlderThan, when positive, restricts deletion to files whose
	// modification time is older than the threshold. Younger files are
	// still measured into the found total.
	OlderThan time.Duration

	// PurgeRecycleBin empties the volume's recycle store after the
	// catalog pass. Defaults to on at the config layer; only an
	// explicit false disables it.
	PurgeRecycleBin bool

	// Accounting selects the size-attribution policy for partial
	// directory failures.
	Accounting Accounting
}

// Recorder persists one row per processed target. Implemented by the
// history database; nil disables recording.
type Recorder interface {
	Record(action, path, kind string, size int64, detail string) error
}

// Pacer is called between catalog entries to keep a run from
// monopolizing the host.
type Pacer interface {
	Pause()
}

// Reclaimer processes catalog entries sequentially against one volume.
// All collaborators are injected; there is no process-global state.
type Reclaimer struct {
	opts      Options
	sink      sink.Sink
	deleter   fsops.Deleter
	validator *safety.Validator
	purger    recycle.Purger
	recorder  Recorder
	pacer     Pacer
	now       func() time.Time
	totals    Accumulator
}

// New creates a Reclaimer with real filesystem collaborators. s may be
// nil when no action log is wanted.
func New(opts Options, s sink.Sink) *Reclaimer {
	if s == nil {
		s = sink.Nop{}
	}
	return &Reclaimer{
		opts:    opts,
		sink:    s,
		deleter: fsops.OSDeleter{},
		purger:  recycle.ShellPurger{},
		now:     time.Now,
	}
}

func (r *Reclaimer) SetDeleter(d fsops.Deleter)       { r.deleter = d }
func (r *Reclaimer) SetValidator(v *safety.Validator) { r.validator = v }
func (r *Reclaimer) SetPurger(p recycle.Purger)       { r.purger = p }
func (r *Reclaimer) SetRecorder(rec Recorder)         { r.recorder = rec }
func (r *Reclaimer) SetPacer(p Pacer)                 { r.pacer = p }

func (r *Reclaimer) setClock(now func() time.Time) { r.now = now }

// Totals returns the raw byte accumulator of the last Run.
func (r *Reclaimer) Totals() Accumulator { return r.totals }

// Run processes the catalog entries in order against the named volume.
// The only fatal condition is an invalid volume identifier; every
// per-entry error is swallowed and reflected, at most, in the totals.
func (r *Reclaimer) Run(volumeID string, entries []catalog.Entry) (Report, error) {
	root, err := volume.Root(volumeID)
	if err != nil {
		return Report{}, fmt.Errorf("reclaim: %w", err)
	}

	r.totals = Accumulator{}

	for i, entry := range entries {
		if i > 0 && r.pacer != nil {
			r.pacer.Pause()
		}
		for _, target := range entry.Resolve(root) {
			if target.Kind == catalog.Directory {
				r.reclaimDirectory(target.Path)
			} else {
				r.reclaimFile(target.Path)
			}
		}
	}

	if r.opts.PurgeRecycleBin {
		r.purgeBin(volumeID)
	}

	return r.totals.Report(r.opts.Apply), nil
}

type measuredFile struct {
	path    string
	size    int64
	modTime time.Time
}

// measureDirectory sums the sizes of all regular files under root.
// Enumeration errors (permission denied, vanished entries) are
// suppressed; whatever could be listed is counted.
func measureDirectory(root string) (int64, []measuredFile) {
	var total int64
	var files []measuredFile
	filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += info.Size()
		files = append(files, measuredFile{path: p, size: info.Size(), modTime: info.ModTime()})
		return nil
	})
	return total, files
}

// reclaimDirectory removes the contents of a directory target; the
// directory itself stays.
func (r *Reclaimer) reclaimDirectory(path string) {
	dirSize, files := measureDirectory(path)
	r.totals.Found += dirSize
	for _, f := range files {
		r.processFile(f, dirSize)
	}
}

func (r *Reclaimer) reclaimFile(path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	f := measuredFile{path: path, size: info.Size(), modTime: info.ModTime()}
	r.totals.Found += f.size
	r.processFile(f, f.size)
}

// processFile attempts one deletion and attributes the outcome by the
// post-delete existence check, the sole authority on success. failCharge
// is the amount added to notRemoved when the file survives: the whole
// directory's size under CoarseAccounting, the file's own size for
// single-file targets and under PerFileAccounting.
func (r *Reclaimer) processFile(f measuredFile, failCharge int64) {
	if r.opts.OlderThan > 0 && r.now().Sub(f.modTime) < r.opts.OlderThan {
		r.record(ActionSkip, f.path, "file", f.size, "younger than age threshold")
		return
	}

	blocked := false
	if r.validator != nil {
		if verr := r.validator.ValidateDeleteTarget(f.path); verr != nil {
			blocked = true
			r.sink.Event(fmt.Sprintf("refusing to delete %s: %v", f.path, verr))
		}
	}

	switch {
	case blocked:
		// Counted below like any other failed delete.
	case r.opts.Apply:
		r.sink.Event(fmt.Sprintf("deleting %s (%d bytes)", f.path, f.size))
		// Deletion errors are swallowed; the existence check decides.
		_ = r.deleter.Remove(f.path)
	default:
		r.sink.Event(fmt.Sprintf("would delete %s (%d bytes)", f.path, f.size))
	}

	if _, err := os.Stat(f.path); err == nil || !os.IsNotExist(err) {
		charge := failCharge
		if r.opts.Accounting == PerFileAccounting {
			charge = f.size
		}
		r.totals.NotRemoved += charge
		if r.opts.Apply {
			r.record(ActionFailed, f.path, "file", f.size, "still present after delete")
		} else {
			r.record(ActionDryRun, f.path, "file", f.size, "")
		}
		return
	}

	r.totals.Removed += f.size
	r.record(ActionDelete, f.path, "file", f.size, "")
}

// purgeBin empties the volume's recycle store, once per run. Failures
// are surfaced to the log sink only and never affect the totals.
func (r *Reclaimer) purgeBin(volumeID string) {
	if !r.opts.Apply {
		r.sink.Event("would purge recycle bin for " + volumeID)
		return
	}
	r.sink.Event("purging recycle bin for " + volumeID)
	if err := r.purger.Purge(volumeID); err != nil {
		r.sink.Event(fmt.Sprintf("recycle bin purge failed: %v", err))
		r.record(ActionPurge, volumeID, "volume", 0, err.Error())
		return
	}
	r.record(ActionPurge, volumeID, "volume", 0, "")
}

func (r *Reclaimer) record(action, path, kind string, size int64, detail string) {
	if r.recorder == nil {
		return
	}
	if err := r.recorder.Record(action, path, kind, size, detail); err != nil {
		r.sink.Event(fmt.Sprintf("history write failed for %s: %v", path, err))
	}
}
