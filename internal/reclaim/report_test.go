package reclaim

import "testing"

// TestReportGiBConversion verifies byte totals convert to gibibytes
// rounded to two decimal places.
func TestReportGiBConversion(t *testing.T) {
	tests := []struct {
		name     string
		bytes    int64
		expected float64
	}{
		{"zero", 0, 0},
		{"one and a half GiB", 1610612736, 1.5},
		{"exactly one GiB", 1 << 30, 1.0},
		{"small rounds to zero", 1024, 0},
		{"rounds down", 1 << 30 / 1000, 0},
		{"quarter GiB", 268435456, 0.25},
		{"rounds to two places", 1395864371, 1.3},
		{"half gibibytes", 11274289152, 10.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := Accumulator{Found: tt.bytes}
			got := acc.Report(true).JunkFound
			if got != tt.expected {
				t.Errorf("Report of %d bytes = %v GiB, expected %v", tt.bytes, got, tt.expected)
			}
		})
	}
}

// TestReportDryRunForcesRemovedZero verifies a dry run never claims
// reclaimed space, whatever the accumulator says.
func TestReportDryRunForcesRemovedZero(t *testing.T) {
	acc := Accumulator{Found: 3 << 30, Removed: 2 << 30, NotRemoved: 1 << 30}

	dry := acc.Report(false)
	if dry.JunkRemoved != 0 {
		t.Errorf("Dry run report must have JunkRemoved=0, got %v", dry.JunkRemoved)
	}
	if dry.JunkFound != 3.0 {
		t.Errorf("Dry run report JunkFound = %v, expected 3.0", dry.JunkFound)
	}
	if dry.JunkNotRemoved != 1.0 {
		t.Errorf("Dry run report JunkNotRemoved = %v, expected 1.0", dry.JunkNotRemoved)
	}

	applied := acc.Report(true)
	if applied.JunkRemoved != 2.0 {
		t.Errorf("Apply report JunkRemoved = %v, expected 2.0", applied.JunkRemoved)
	}
}
