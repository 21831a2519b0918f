// Package idgen generates opaque run and session identifiers. Tests may
// replace NewFunc.
package idgen
