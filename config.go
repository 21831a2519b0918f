package mdflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/mdflow/logging"
	"github.com/viant/mdflow/model/ident"
	"github.com/viant/mdflow/service/meta"
)

// Config is a serialisable representation of the engine configuration. It is
// usually loaded from YAML with LoadConfig; ${env.KEY} expressions are expanded
// before decoding.
type Config struct {
	Session  SessionConfig  `json:"session" yaml:"session"`
	Worlds   []*WorldConfig `json:"worlds" yaml:"worlds"`
	Runtime  RuntimeConfig  `json:"runtime" yaml:"runtime"`
	Script   ScriptConfig   `json:"script" yaml:"script"`
	Template TemplateConfig `json:"template" yaml:"template"`
	Tracing  TracingConfig  `json:"tracing" yaml:"tracing"`
	Log      logging.Config `json:"log" yaml:"log"`
}

// SessionConfig locates session snapshots. An empty URL keeps them in memory.
type SessionConfig struct {
	URL string `json:"url" yaml:"url"`
	ID  string `json:"id" yaml:"id"`
}

// WorldConfig declares an afs backed world.
type WorldConfig struct {
	ID       string `json:"id" yaml:"id"`
	URL      string `json:"url" yaml:"url"`
	ReadOnly bool   `json:"readOnly" yaml:"readOnly"`
}

type RuntimeConfig struct {
	MaxSteps int  `json:"maxSteps" yaml:"maxSteps"`
	Diff     bool `json:"diff" yaml:"diff"`
}

type ScriptConfig struct {
	TimeoutMs int               `json:"timeoutMs" yaml:"timeoutMs"`
	Env       map[string]string `json:"env" yaml:"env"`
}

// TemplateConfig sets the directive delimiters of artifact sources.
type TemplateConfig struct {
	LeftDelim  string `json:"leftDelim" yaml:"leftDelim"`
	RightDelim string `json:"rightDelim" yaml:"rightDelim"`
}

type TracingConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	ServiceName    string `json:"serviceName" yaml:"serviceName"`
	ServiceVersion string `json:"serviceVersion" yaml:"serviceVersion"`
	// OutputFile receives spans; empty means stdout.
	OutputFile string `json:"outputFile" yaml:"outputFile"`
}

// DefaultConfig returns a Config populated with default values. Callers may
// modify the returned struct before passing it to WithConfig.
func DefaultConfig() *Config {
	return &Config{
		Session:  SessionConfig{ID: "default"},
		Runtime:  RuntimeConfig{MaxSteps: 1000},
		Script:   ScriptConfig{TimeoutMs: 60000},
		Template: TemplateConfig{LeftDelim: "{{", RightDelim: "}}"},
		Tracing:  TracingConfig{ServiceName: "mdflow"},
		Log:      logging.Config{Level: "info", Format: "text"},
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Session.ID == "" {
		errs = append(errs, fmt.Errorf("session.id is required"))
	}
	seen := map[string]bool{}
	for i, w := range c.Worlds {
		switch {
		case w == nil:
			errs = append(errs, fmt.Errorf("worlds[%d] is empty", i))
			continue
		case w.URL == "":
			errs = append(errs, fmt.Errorf("worlds[%d].url is required", i))
		}
		if _, err := ident.ParseWorldID(w.ID); err != nil {
			errs = append(errs, fmt.Errorf("worlds[%d].id: %w", i, err))
		}
		if seen[w.ID] {
			errs = append(errs, fmt.Errorf("worlds[%d].id %q is duplicated", i, w.ID))
		}
		seen[w.ID] = true
	}
	if c.Runtime.MaxSteps <= 0 {
		errs = append(errs, fmt.Errorf("runtime.maxSteps must be > 0"))
	}
	if c.Script.TimeoutMs <= 0 {
		errs = append(errs, fmt.Errorf("script.timeoutMs must be > 0"))
	}
	if (c.Template.LeftDelim == "") != (c.Template.RightDelim == "") {
		errs = append(errs, fmt.Errorf("template delimiters must be set together"))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// LoadConfig reads a YAML configuration over DefaultConfig.
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	ret := DefaultConfig()
	if err := meta.New(afs.New(), "", options...).Load(ctx, URL, ret); err != nil {
		return nil, err
	}
	if err := ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return ret, nil
}
