// Package types defines the primitive kinds resolved through the primitives
// registry: artifact kinds, section kinds and operation kinds.
package types
