package directive

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	// Marker brackets a directive in the analysis rendering.
	Marker      = "MDFLOW"
	openMarker  = "<<" + Marker
	closeMarker = Marker + ">>"
)

const (
	whitespaceCode = iota + 1
	openMarkerCode
	closeMarkerCode
	nameCode
	argumentCode
)

var (
	whitespaceToken  = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	openMarkerToken  = parsly.NewToken(openMarkerCode, openMarker, matcher.NewFragment(openMarker))
	closeMarkerToken = parsly.NewToken(closeMarkerCode, closeMarker, matcher.NewFragment(closeMarker))
	nameToken        = parsly.NewToken(nameCode, "Name", &nameMatcher{})
	argumentToken    = parsly.NewToken(argumentCode, "Argument", &argumentMatcher{})
)

// nameMatcher matches a lower-case directive name.
type nameMatcher struct{}

func (m *nameMatcher) Match(cursor *parsly.Cursor) int {
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		c := cursor.Input[i]
		if (c >= 'a' && c <= 'z') || c == '_' {
			matched++
			continue
		}
		break
	}
	return matched
}

// argumentMatcher matches a run of non-whitespace bytes that is not the
// closing marker itself.
type argumentMatcher struct{}

func (m *argumentMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input[cursor.Pos:cursor.InputSize]
	if len(input) >= len(closeMarker) && string(input[:len(closeMarker)]) == closeMarker {
		return 0
	}
	matched := 0
	for _, c := range input {
		if isSpace(c) {
			break
		}
		matched++
	}
	return matched
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
