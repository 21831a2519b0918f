// Package action assembles the built-in primitives module.
package action

import (
	"github.com/viant/mdflow/service/action/finish"
	"github.com/viant/mdflow/service/action/output"
	"github.com/viant/mdflow/service/action/request"
	"github.com/viant/mdflow/service/action/script"
	"github.com/viant/mdflow/service/action/specification"
	"github.com/viant/mdflow/service/action/text"
	"github.com/viant/mdflow/service/action/workflow"
	"github.com/viant/mdflow/service/primitive"
)

// Path is the module path of the built-in primitives.
const Path = "mdflow.lib"

// Built-in primitive identifiers.
var (
	SpecificationKind = ID("specification")
	WorkflowKind      = ID("workflow")
	TextKind          = ID("text")
	RequestActionKind = ID("request_action")
	OutputKind        = ID("output")
	RunScriptKind     = ID("run_script")
	FinishKind        = ID("finish")
)

// ID returns the identifier of a built-in primitive.
func ID(name string) string {
	return Path + "." + name
}

type options struct {
	script []script.Option
}

// Option configures the built-in module
type Option func(o *options)

// WithScriptOptions configures run_script.
func WithScriptOptions(opts ...script.Option) Option {
	return func(o *options) {
		o.script = append(o.script, opts...)
	}
}

// WithScriptRunner replaces the shell runner used by run_script.
func WithScriptRunner(runner script.Runner) Option {
	return WithScriptOptions(script.WithRunner(runner))
}

// Library returns the built-in module keyed by member name.
func Library(opts ...Option) primitive.Module {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	kinds := []interface{ Name() string }{
		specification.New(TextKind),
		workflow.New(RequestActionKind),
		text.New(),
		request.New(),
		output.New(),
		script.New(o.script...),
		finish.New(),
	}
	ret := primitive.Module{}
	for _, kind := range kinds {
		ret[kind.Name()] = kind
	}
	return ret
}

// Register adds the built-in module to registry.
func Register(registry *primitive.Registry, opts ...Option) {
	registry.Register(Path, Library(opts...))
}
