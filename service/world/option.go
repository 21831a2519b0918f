package world

import (
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
)

// Option configures an afs world
type Option func(w *FS)

// WithReadOnly marks the world read-only.
func WithReadOnly(readOnly bool) Option {
	return func(w *FS) {
		w.readOnly = readOnly
	}
}

// WithStorageOptions passes options (e.g. an *embed.FS) to every afs call.
func WithStorageOptions(options ...storage.Option) Option {
	return func(w *FS) {
		w.options = append(w.options, options...)
	}
}

// WithFileSystem sets the afs service
func WithFileSystem(fs afs.Service) Option {
	return func(w *FS) {
		w.fs = fs
	}
}
