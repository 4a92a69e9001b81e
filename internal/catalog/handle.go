package catalog

import "sync/atomic"

// Handle owns the current dataset of a running process.
// Readers take a snapshot with Current and keep using it; a loader replaces
// the snapshot with Swap without disturbing them.
type Handle struct {
	current atomic.Pointer[Dataset]
	path    string
}

// NewHandle returns a Handle serving ds, loaded from path.
// path may be empty for datasets built in memory.
func NewHandle(ds *Dataset, path string) *Handle {
	h := &Handle{path: path}
	h.current.Store(ds)
	return h
}

// Current returns the dataset snapshot in use.
func (h *Handle) Current() *Dataset {
	return h.current.Load()
}

// Swap installs ds and returns the previous snapshot.
func (h *Handle) Swap(ds *Dataset) *Dataset {
	return h.current.Swap(ds)
}

// Path returns the file the dataset was loaded from.
func (h *Handle) Path() string {
	return h.path
}
