// Package recycle empties the per-volume recycle/trash store.
package recycle

import "errors"

// ErrUnsupported reports that the platform has no recycle-bin API.
var ErrUnsupported = errors.New("recycle bin purge not supported on this platform")

// Purger empties the recycle/trash store for one volume. The purge is a
// single external API call; there is no partial-failure handling beyond
// the returned error.
type Purger interface {
	Purge(volume string) error
}

// Fake records purge calls for tests.
type Fake struct {
	Calls []string
	Err   error
}

func (f *Fake) Purge(volume string) error {
	f.Calls = append(f.Calls, volume)
	return f.Err
}
