package meta

import (
	"context"
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	_ "github.com/viant/afs/embed"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*
var testFS embed.FS

type testConfig struct {
	Session struct {
		URL string `yaml:"url"`
	} `yaml:"session"`
	Runtime struct {
		MaxSteps int `yaml:"maxSteps"`
	} `yaml:"runtime"`
}

func TestService_Load(t *testing.T) {
	ctx := context.Background()
	srv := New(afs.New(), "embed:///testdata", &testFS)

	testCases := []struct {
		name   string
		env    string
		expect string
	}{
		{name: "fallback", expect: "mem://localhost/sessions"},
		{name: "env", env: "file:///tmp/sessions", expect: "file:///tmp/sessions"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("MDFLOW_META_TEST_SESSION", tc.env)
			config := &testConfig{}
			require.NoError(t, srv.Load(ctx, "config.yaml", config))
			assert.Equal(t, tc.expect, config.Session.URL)
			assert.Equal(t, 50, config.Runtime.MaxSteps)
		})
	}

	var node yaml.Node
	require.NoError(t, srv.Load(ctx, "config.yaml", &node))
	assert.Equal(t, yaml.DocumentNode, node.Kind)

	assert.Error(t, srv.Load(ctx, "missing.yaml", &node))
	assert.Equal(t, "embed:///testdata/config.yaml", srv.URL("config.yaml"))
	assert.Equal(t, "mem://localhost/x.yaml", srv.URL("mem://localhost/x.yaml"))
}
