package idgen

import "github.com/google/uuid"

// NewFunc returns a new globally unique identifier.
var NewFunc = func() string { return uuid.New().String() }

// New returns NewFunc().
func New() string { return NewFunc() }
