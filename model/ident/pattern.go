package ident

import "strings"

// FullArtifactIDPattern selects full artifact ids. Each segment is a literal,
// AnySegment or AnySegments.
type FullArtifactIDPattern []string

// ParsePattern parses a ':'-joined pattern such as "project:**" or "*:workflows:*".
func ParsePattern(text string) (FullArtifactIDPattern, error) {
	segments, err := split(text, true)
	if err != nil {
		return nil, err
	}
	return FullArtifactIDPattern(segments), nil
}

// MustParsePattern panics on malformed patterns; intended for constants.
func MustParsePattern(text string) FullArtifactIDPattern {
	pattern, err := ParsePattern(text)
	if err != nil {
		panic(err)
	}
	return pattern
}

func (p FullArtifactIDPattern) String() string {
	return strings.Join(p, delimiter)
}

// Match reports whether id is selected by the pattern.
func (p FullArtifactIDPattern) Match(id FullArtifactID) bool {
	return matchSegments(p, id.Segments())
}

// MatchSegments reports whether the segment sequence is selected by the pattern.
func (p FullArtifactIDPattern) MatchSegments(segments []string) bool {
	return matchSegments(p, segments)
}

// CanMatchPrefix reports whether some id starting with prefix can match. Every
// prefix of a matching id satisfies it, so callers may prune a walk on false.
func (p FullArtifactIDPattern) CanMatchPrefix(prefix []string) bool {
	return matchPrefix(p, prefix)
}

func matchSegments(pattern, segments []string) bool {
	if len(pattern) == 0 {
		return len(segments) == 0
	}
	switch head := pattern[0]; head {
	case AnySegments:
		for consumed := 0; consumed <= len(segments); consumed++ {
			if matchSegments(pattern[1:], segments[consumed:]) {
				return true
			}
		}
		return false
	case AnySegment:
		return len(segments) > 0 && matchSegments(pattern[1:], segments[1:])
	default:
		return len(segments) > 0 && segments[0] == head && matchSegments(pattern[1:], segments[1:])
	}
}

// matchPrefix succeeds once the prefix is exhausted: any pattern remainder can
// be satisfied by some suffix (literals by themselves, '*' by anything, '**' by
// nothing).
func matchPrefix(pattern, prefix []string) bool {
	if len(prefix) == 0 {
		return true
	}
	if len(pattern) == 0 {
		return false
	}
	switch head := pattern[0]; head {
	case AnySegments:
		for consumed := 0; consumed <= len(prefix); consumed++ {
			if matchPrefix(pattern[1:], prefix[consumed:]) {
				return true
			}
		}
		return false
	case AnySegment:
		return matchPrefix(pattern[1:], prefix[1:])
	default:
		return prefix[0] == head && matchPrefix(pattern[1:], prefix[1:])
	}
}
