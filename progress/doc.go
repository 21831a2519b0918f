// Package progress keeps step counters of a runtime session in the context.
package progress
