package ident

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name   string
		parse  func(string) (string, error)
		input  string
		expect string
		hasErr bool
	}{
		{name: "world", parse: wrap(ParseWorldID), input: "project", expect: "project"},
		{name: "world with delimiter", parse: wrap(ParseWorldID), input: "project:x", hasErr: true},
		{name: "artifact single", parse: wrap(ParseArtifactID), input: "release", expect: "release"},
		{name: "artifact nested", parse: wrap(ParseArtifactID), input: "workflows:release_2", expect: "workflows:release_2"},
		{name: "full artifact", parse: wrap(ParseFullArtifactID), input: "project:workflows:release", expect: "project:workflows:release"},
		{name: "full artifact too short", parse: wrap(ParseFullArtifactID), input: "project", hasErr: true},
		{name: "section", parse: wrap(ParseArtifactSectionID), input: "_start", expect: "_start"},
		{name: "full section", parse: wrap(ParseFullArtifactSectionID), input: "project:release:start", expect: "project:release:start"},
		{name: "full section too short", parse: wrap(ParseFullArtifactSectionID), input: "project:release", hasErr: true},
		{name: "empty", parse: wrap(ParseArtifactID), input: "", hasErr: true},
		{name: "empty segment", parse: wrap(ParseArtifactID), input: "a::b", hasErr: true},
		{name: "trailing delimiter", parse: wrap(ParseArtifactID), input: "a:b:", hasErr: true},
		{name: "leading digit", parse: wrap(ParseArtifactID), input: "a:1b", hasErr: true},
		{name: "invalid character", parse: wrap(ParseArtifactID), input: "a:b-c", hasErr: true},
		{name: "wildcard not allowed", parse: wrap(ParseFullArtifactID), input: "a:*", hasErr: true},
		{name: "whitespace", parse: wrap(ParseArtifactID), input: "a :b", hasErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := tc.parse(tc.input)
			if tc.hasErr {
				assert.True(t, errors.Is(err, ErrMalformedIdentifier), "expected malformed identifier, got %v", err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func wrap[T ~string](fn func(string) (T, error)) func(string) (string, error) {
	return func(text string) (string, error) {
		value, err := fn(text)
		return string(value), err
	}
}

func TestRoundTrip(t *testing.T) {
	for _, text := range []string{"w:a", "w:a:b:c", "World_1:Artifact:x9"} {
		first, err := ParseFullArtifactID(text)
		assert.NoError(t, err)
		second, err := ParseFullArtifactID(first.String())
		assert.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, text, second.String())
	}
}

func TestFullArtifactSectionID(t *testing.T) {
	id, err := ParseFullArtifactSectionID("project:workflows:release:start")
	assert.NoError(t, err)
	assert.Equal(t, FullArtifactID("project:workflows:release"), id.FullArtifactID())
	assert.Equal(t, ArtifactSectionID("start"), id.Local())
	assert.Equal(t, WorldID("project"), id.FullArtifactID().World())
	assert.Equal(t, ArtifactID("workflows:release"), id.FullArtifactID().Artifact())
	assert.Equal(t, id, id.FullArtifactID().Section("start"))
	assert.Equal(t, FullArtifactID("project:workflows:release"), WorldID("project").Artifact(NewArtifactID("workflows", "release")))
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("abc_1"))
	assert.True(t, IsIdentifier("_x"))
	assert.False(t, IsIdentifier("1x"))
	assert.False(t, IsIdentifier("a:b"))
	assert.False(t, IsIdentifier(""))
}

func TestSlug(t *testing.T) {
	testCases := []struct {
		text   string
		expect string
	}{
		{text: "Review the plan!", expect: "review_the_plan"},
		{text: "  Step 2: Build ", expect: "step_2_build"},
		{text: "3 ways", expect: "_3_ways"},
		{text: "Ünïcode only", expect: "n_code_only"},
		{text: "!!!", expect: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			actual := Slug(tc.text)
			assert.Equal(t, tc.expect, actual)
			if actual != "" {
				assert.True(t, IsIdentifier(actual))
			}
		})
	}
}
