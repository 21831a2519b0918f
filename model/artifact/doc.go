// Package artifact defines parsed documents: raw sections as produced by the
// markdown parser and constructed artifacts whose sections carry kind specific
// metadata.
package artifact
