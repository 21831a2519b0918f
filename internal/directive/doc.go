// Package directive renders artifact templates in two modes and recovers
// control directives from the analysis rendering.
//
// A document is a Go text/template. In view mode {{ goto "finish" }} renders
// the target's full section id for a human or agent reader; in analysis mode
// the same call renders a sentinel such as
//
//	<<MDFLOW goto finish MDFLOW>>
//
// which Extract turns back into a Directive. Both renderings must split into
// the same sections, which Compare asserts.
package directive
