package reclaim

import "math"

// Accounting names the size-attribution policy applied when a file
// inside a directory target survives its delete.
type Accounting int

const (
	// CoarseAccounting charges the entire directory's measured size to
	// notRemoved for every file that survives. The default; see
	// DESIGN.md for the accounting rationale.
	CoarseAccounting Accounting = iota

	// PerFileAccounting charges only the surviving file's own size.
	PerFileAccounting
)

// Accumulator holds the three running byte totals of one run. Always
// explicitly zero-initialized at run start and owned by that run alone.
type Accumulator struct {
	Found      int64
	Removed    int64
	NotRemoved int64
}

// Report is the final immutable snapshot of an accumulator, converted
// to gibibytes and rounded to 2 decimal places. A dry run reports
// JunkRemoved as zero regardless of the accumulator: dry runs must
// never claim reclaimed space.
type Report struct {
	JunkFound      float64
	JunkRemoved    float64
	JunkNotRemoved float64
}

const bytesPerGiB = 1 << 30

// Report converts byte totals to the user-facing gibibyte report.
func (a Accumulator) Report(apply bool) Report {
	r := Report{
		JunkFound:      roundGiB(a.Found),
		JunkRemoved:    roundGiB(a.Removed),
		JunkNotRemoved: roundGiB(a.NotRemoved),
	}
	if !apply {
		r.JunkRemoved = 0
	}
	return r
}

func roundGiB(b int64) float64 {
	return math.Round(float64(b)/bytesPerGiB*100) / 100
}
