package recycle

import (
	"errors"
	"runtime"
	"testing"
)

// TestFakeRecordsCalls covers the test double used by the engine tests.
func TestFakeRecordsCalls(t *testing.T) {
	f := &Fake{}
	if err := f.Purge("C:"); err != nil {
		t.Errorf("Fake purge failed: %v", err)
	}
	if err := f.Purge("D:"); err != nil {
		t.Errorf("Fake purge failed: %v", err)
	}
	if len(f.Calls) != 2 || f.Calls[0] != "C:" || f.Calls[1] != "D:" {
		t.Errorf("Fake calls wrong: %v", f.Calls)
	}

	f.Err = errors.New("boom")
	if err := f.Purge("C:"); err == nil {
		t.Error("Expected configured error from fake")
	}
}

// TestShellPurgerUnsupportedPlatforms verifies the graceful degradation
// outside Windows.
func TestShellPurgerUnsupportedPlatforms(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Windows has a real recycle bin API")
	}
	if err := (ShellPurger{}).Purge("/"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Expected ErrUnsupported, got %v", err)
	}
}
