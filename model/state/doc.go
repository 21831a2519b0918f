// Package state holds durable session state: tasks, work units and action
// requests. ConsistentState is an immutable snapshot safe to persist and
// compare; MutableState is the working copy a step mutates before it is
// frozen into the next snapshot.
package state
