package ident

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	identifierCode = iota + 1
	delimiterCode
	anySegmentCode
	anySegmentsCode
)

var (
	identifierToken  = parsly.NewToken(identifierCode, "Identifier", &identifierMatcher{})
	delimiterToken   = parsly.NewToken(delimiterCode, "Delimiter", matcher.NewByte(Delimiter))
	anySegmentsToken = parsly.NewToken(anySegmentsCode, "AnySegments", matcher.NewFragment(AnySegments))
	anySegmentToken  = parsly.NewToken(anySegmentCode, "AnySegment", matcher.NewFragment(AnySegment))
)

// identifierMatcher matches a bare identifier: letters, digits and '_', not
// starting with a digit.
type identifierMatcher struct{}

func (m *identifierMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize
	if pos >= size {
		return 0
	}
	if !isLetter(input[pos]) && input[pos] != '_' {
		return 0
	}
	matched := 1
	for i := pos + 1; i < size; i++ {
		if isLetter(input[i]) || isDigit(input[i]) || input[i] == '_' {
			matched++
			continue
		}
		break
	}
	return matched
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// IsIdentifier reports whether text is a valid bare identifier segment.
func IsIdentifier(text string) bool {
	if text == "" {
		return false
	}
	cursor := parsly.NewCursor("", []byte(text), 0)
	matched := cursor.MatchOne(identifierToken)
	return matched.Code == identifierCode && !cursor.HasMore()
}

// split breaks text into validated segments; wildcards are accepted only when
// allowWildcards is set.
func split(text string, allowWildcards bool) ([]string, error) {
	if text == "" {
		return nil, malformed(text, "empty identifier")
	}
	cursor := parsly.NewCursor("", []byte(text), 0)
	var segments []string
	for {
		var matched *parsly.TokenMatch
		if allowWildcards {
			matched = cursor.MatchAny(anySegmentsToken, anySegmentToken, identifierToken)
		} else {
			matched = cursor.MatchOne(identifierToken)
		}
		switch matched.Code {
		case identifierCode, anySegmentCode, anySegmentsCode:
			segments = append(segments, matched.Text(cursor))
		default:
			return nil, malformed(text, "invalid or empty segment")
		}
		if !cursor.HasMore() {
			return segments, nil
		}
		if cursor.MatchOne(delimiterToken).Code != delimiterCode {
			return nil, malformed(text, "invalid character in segment")
		}
		if !cursor.HasMore() {
			return nil, malformed(text, "trailing delimiter")
		}
	}
}
