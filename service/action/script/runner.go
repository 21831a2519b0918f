package script

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/gosh"
	"github.com/viant/gosh/runner"
	"github.com/viant/gosh/runner/local"
)

// Runner executes a shell script and reports its stdout and exit status.
type Runner interface {
	Run(ctx context.Context, script string, timeoutMs int) (stdout string, status int, err error)
}

// LocalRunner runs scripts in a local shell session opened on first use.
type LocalRunner struct {
	env     map[string]string
	service *gosh.Service
	mux     sync.Mutex
}

// NewLocalRunner creates a runner; env is applied when the session opens.
func NewLocalRunner(env map[string]string) *LocalRunner {
	return &LocalRunner{env: env}
}

func (r *LocalRunner) Run(ctx context.Context, script string, timeoutMs int) (string, int, error) {
	r.mux.Lock()
	defer r.mux.Unlock()
	service, err := r.session(ctx)
	if err != nil {
		return "", 0, err
	}
	return service.Run(ctx, script, runner.WithTimeout(timeoutMs))
}

func (r *LocalRunner) session(ctx context.Context) (*gosh.Service, error) {
	if r.service != nil {
		return r.service, nil
	}
	var options []runner.Option
	if len(r.env) > 0 {
		options = append(options, runner.WithEnvironment(r.env))
	}
	service, err := gosh.New(ctx, local.New(options...))
	if err != nil {
		return nil, fmt.Errorf("failed to open shell session: %w", err)
	}
	r.service = service
	return service, nil
}

// Close releases the shell session
func (r *LocalRunner) Close() error {
	r.mux.Lock()
	defer r.mux.Unlock()
	if r.service == nil {
		return nil
	}
	err := r.service.Close()
	r.service = nil
	return err
}
