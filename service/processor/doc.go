// Package processor drives a session: it executes work units one at a time,
// persisting a snapshot after every step and publishing emitted events once
// the snapshot is stored.
package processor
