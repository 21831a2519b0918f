// Package graph models a workflow as a directed graph of operations and
// validates its structure.
package graph
