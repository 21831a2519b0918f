package world

import (
	"context"
	"embed"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "github.com/viant/afs/embed"
	"github.com/viant/mdflow/model/ident"
)

//go:embed testdata/*
var testFS embed.FS

func TestFS_Embedded(t *testing.T) {
	ctx := context.Background()
	w := NewFS("lib", "embed:///testdata/library", WithReadOnly(true), WithStorageOptions(&testFS))

	source, err := w.Fetch(ctx, "guides:hello")
	require.NoError(t, err)
	assert.Contains(t, string(source), "# Hello")

	_, err = w.Fetch(ctx, "missing")
	assert.True(t, errors.Is(err, ErrArtifactNotFound))

	err = w.Update(ctx, "intro", []byte("# x"))
	assert.True(t, errors.Is(err, ErrReadOnlyWorld))
	assert.True(t, errors.Is(w.Remove(ctx, "intro"), ErrReadOnlyWorld))

	testCases := []struct {
		pattern string
		expect  []ident.FullArtifactID
	}{
		{pattern: "lib:**", expect: []ident.FullArtifactID{"lib:guides:hello", "lib:intro"}},
		{pattern: "lib:*", expect: []ident.FullArtifactID{"lib:intro"}},
		{pattern: "*:guides:*", expect: []ident.FullArtifactID{"lib:guides:hello"}},
		{pattern: "other:**", expect: nil},
	}
	for _, tc := range testCases {
		t.Run(tc.pattern, func(t *testing.T) {
			actual, err := w.List(ctx, ident.MustParsePattern(tc.pattern))
			require.NoError(t, err)
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func TestFS_Memory(t *testing.T) {
	ctx := context.Background()
	w := NewFS("project", "mem://localhost/world_test")

	ok, err := w.Has(ctx, "flows:build")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, w.Update(ctx, "flows:build", []byte("# Build\n")))
	source, err := w.Fetch(ctx, "flows:build")
	require.NoError(t, err)
	assert.Equal(t, "# Build\n", string(source))

	ids, err := w.List(ctx, ident.MustParsePattern("project:**"))
	require.NoError(t, err)
	assert.Equal(t, []ident.FullArtifactID{"project:flows:build"}, ids)

	require.NoError(t, w.Remove(ctx, "flows:build"))
	assert.True(t, errors.Is(w.Remove(ctx, "flows:build"), ErrArtifactNotFound))
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	lib := NewFS("lib", "embed:///testdata/library", WithReadOnly(true), WithStorageOptions(&testFS))
	project := NewFS("project", "mem://localhost/registry_test")
	require.NoError(t, project.Update(ctx, "intro", []byte("# Project\n")))
	registry := NewRegistry(lib, project)

	source, err := registry.Fetch(ctx, "project:intro")
	require.NoError(t, err)
	assert.Equal(t, "# Project\n", string(source))

	_, err = registry.Fetch(ctx, "nowhere:intro")
	assert.True(t, errors.Is(err, ErrUnknownWorld))

	ids, err := registry.List(ctx, ident.MustParsePattern("*:intro"))
	require.NoError(t, err)
	assert.Equal(t, []ident.FullArtifactID{"lib:intro", "project:intro"}, ids)
}
