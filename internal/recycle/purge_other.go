//go:build !windows

package recycle

// ShellPurger is only functional on Windows; elsewhere the purge is
// reported as unsupported and surfaced to the log sink by the caller.
type ShellPurger struct{}

func (ShellPurger) Purge(volume string) error {
	return ErrUnsupported
}
