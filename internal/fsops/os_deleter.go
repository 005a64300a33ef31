package fsops

import "os"

// OSDeleter implements Deleter using real os package calls.
// Removes are forced: when a remove fails on permissions the file is
// made writable and the remove retried once. Read-only junk (installer
// leftovers, update caches) is still fair game for reclaim.
type OSDeleter struct{}

func (OSDeleter) Remove(path string) error {
	err := os.Remove(path)
	if err == nil || !os.IsPermission(err) {
		return err
	}
	if chmodErr := os.Chmod(path, 0o600); chmodErr != nil {
		return err
	}
	return os.Remove(path)
}
