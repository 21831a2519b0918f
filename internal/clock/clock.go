// Package clock exposes the time source used for event timestamps.
package clock

import "time"

// NowFunc returns the current time; tests replace it for determinism.
var NowFunc = time.Now

// Now returns NowFunc().
func Now() time.Time { return NowFunc() }
