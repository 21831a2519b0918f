// Package execution describes what an operation sees while it runs: the task
// and work unit being processed and the constructed workflow section.
package execution
