package state

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Diff returns a unified diff between two snapshots' documents.
func Diff(before, after *ConsistentState) (string, error) {
	var from, to []byte
	var err error
	if before != nil {
		if from, err = Encode(before); err != nil {
			return "", err
		}
	}
	if after != nil {
		if to, err = Encode(after); err != nil {
			return "", err
		}
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(from)),
		B:        difflib.SplitLines(string(to)),
		FromFile: "before",
		ToFile:   "after",
		Context:  2,
	})
}
