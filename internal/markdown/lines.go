package markdown

import (
	"sort"
	"strings"
)

// lines indexes line starts of a source document.
type lines struct {
	source []byte
	starts []int
}

func newLines(source []byte) *lines {
	ret := &lines{source: source, starts: []int{0}}
	for i, c := range source {
		if c == '\n' && i+1 < len(source) {
			ret.starts = append(ret.starts, i+1)
		}
	}
	if len(source) == 0 {
		ret.starts = nil
	}
	return ret
}

func (l *lines) count() int {
	return len(l.starts)
}

// lineOf returns the index of the line holding offset.
func (l *lines) lineOf(offset int) int {
	return sort.Search(len(l.starts), func(i int) bool { return l.starts[i] > offset }) - 1
}

// text returns lines [from, to) verbatim, including line breaks.
func (l *lines) text(from, to int) string {
	if from >= to {
		return ""
	}
	start := l.starts[from]
	end := len(l.source)
	if to < len(l.starts) {
		end = l.starts[to]
	}
	return string(l.source[start:end])
}

func (l *lines) line(index int) string {
	return strings.TrimRight(l.text(index, index+1), "\r\n")
}
