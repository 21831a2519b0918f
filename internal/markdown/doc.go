// Package markdown splits an artifact document into a head section and its
// level-2 sub-sections. Block structure comes from goldmark; section bodies
// are kept as verbatim slices of the source so they render back losslessly.
package markdown
