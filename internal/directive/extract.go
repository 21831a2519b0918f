package directive

import (
	"bytes"
	"fmt"

	"github.com/viant/mdflow/model/artifact"
	"github.com/viant/parsly"
)

// Extract returns directives found in an analysis rendering, in order.
func Extract(text string) ([]artifact.Directive, error) {
	input := []byte(text)
	cursor := parsly.NewCursor("", input, 0)
	var result []artifact.Directive
	for cursor.Pos < cursor.InputSize {
		idx := bytes.Index(input[cursor.Pos:], []byte(openMarker))
		if idx < 0 {
			break
		}
		cursor.Pos += idx
		directive, err := parseDirective(cursor)
		if err != nil {
			return nil, err
		}
		result = append(result, *directive)
	}
	return result, nil
}

// parseDirective reads: open ws+ name ws+ argument ws+ close.
func parseDirective(cursor *parsly.Cursor) (*artifact.Directive, error) {
	start := cursor.Pos
	cursor.MatchOne(openMarkerToken)
	if cursor.MatchOne(whitespaceToken).Code != whitespaceCode {
		return nil, malformed(cursor, start, "expected whitespace after marker")
	}
	name := cursor.MatchOne(nameToken)
	if name.Code != nameCode {
		return nil, malformed(cursor, start, "expected directive name")
	}
	ret := &artifact.Directive{Name: name.Text(cursor)}
	if cursor.MatchOne(whitespaceToken).Code != whitespaceCode {
		return nil, malformed(cursor, start, "expected whitespace after name")
	}
	argument := cursor.MatchOne(argumentToken)
	if argument.Code != argumentCode {
		return nil, malformed(cursor, start, "expected argument")
	}
	ret.Argument = argument.Text(cursor)
	if cursor.MatchOne(whitespaceToken).Code != whitespaceCode {
		return nil, malformed(cursor, start, "expected whitespace after argument")
	}
	if cursor.MatchOne(closeMarkerToken).Code != closeMarkerCode {
		return nil, malformed(cursor, start, "expected closing marker")
	}
	return ret, nil
}

func malformed(cursor *parsly.Cursor, start int, reason string) error {
	end := cursor.Pos + 1
	if end > cursor.InputSize {
		end = cursor.InputSize
	}
	return fmt.Errorf("%w at offset %d: %s near %q", ErrMalformedDirective, start, reason, cursor.Input[start:end])
}
