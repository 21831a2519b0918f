package mdflow

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/mdflow/internal/directive"
	"github.com/viant/mdflow/logging"
	"github.com/viant/mdflow/model/ident"
	"github.com/viant/mdflow/service/action"
	"github.com/viant/mdflow/service/action/script"
	"github.com/viant/mdflow/service/artifact"
	"github.com/viant/mdflow/service/dao/session"
	sfs "github.com/viant/mdflow/service/dao/session/fs"
	smemory "github.com/viant/mdflow/service/dao/session/memory"
	"github.com/viant/mdflow/service/event"
	"github.com/viant/mdflow/service/primitive"
	"github.com/viant/mdflow/service/world"
	"github.com/viant/mdflow/tracing"
)

// Service wires worlds, primitives, the artifact loader and the session
// store into a Runtime.
type Service struct {
	config         *Config
	fs             afs.Service
	storageOptions []storage.Option
	worlds         []world.World
	modules        map[string]primitive.Module
	library        primitive.Module
	store          session.Store
	handlers       []event.Handler
	scriptRunner   script.Runner
	logger         logging.Logger
	tracingErr     error
	runtime        *Runtime
}

// New creates a service
func New(options ...Option) (*Service, error) {
	ret := &Service{config: DefaultConfig(), modules: map[string]primitive.Module{}}
	for _, option := range options {
		option(ret)
	}
	if err := ret.init(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *Service) init() error {
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if s.tracingErr != nil {
		return fmt.Errorf("failed to init tracing: %w", s.tracingErr)
	}
	if s.config.Tracing.Enabled {
		if err := tracing.Init(s.config.Tracing.ServiceName, s.config.Tracing.ServiceVersion, s.config.Tracing.OutputFile); err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.logger == nil {
		logger, err := logging.New(&s.config.Log)
		if err != nil {
			return err
		}
		s.logger = logger
	}
	worlds, err := s.ensureWorlds()
	if err != nil {
		return err
	}
	if err = s.ensureSessionStore(); err != nil {
		return err
	}
	primitives := s.ensurePrimitives()
	renderer := directive.NewRenderer(directive.WithDelimiters(s.config.Template.LeftDelim, s.config.Template.RightDelim))
	s.runtime = &Runtime{
		config:     s.config,
		worlds:     worlds,
		primitives: primitives,
		artifacts:  artifact.New(worlds, primitives, artifact.WithRenderer(renderer)),
		store:      s.store,
		events:     event.New(event.WithHandler(s.handlers...)),
		logger:     s.logger,
	}
	return nil
}

func (s *Service) ensureWorlds() (*world.Registry, error) {
	ret := world.NewRegistry()
	for _, cfg := range s.config.Worlds {
		ret.Register(world.NewFS(ident.WorldID(cfg.ID), cfg.URL,
			world.WithReadOnly(cfg.ReadOnly),
			world.WithFileSystem(s.fs),
			world.WithStorageOptions(s.storageOptions...)))
	}
	for _, w := range s.worlds {
		if _, err := ret.Lookup(w.ID()); err == nil {
			return nil, fmt.Errorf("world %v is already registered", w.ID())
		}
		ret.Register(w)
	}
	return ret, nil
}

func (s *Service) ensureSessionStore() error {
	if s.store != nil {
		return nil
	}
	if s.config.Session.URL == "" {
		s.store = smemory.New()
		return nil
	}
	store, err := sfs.New(s.config.Session.URL, s.fs)
	if err != nil {
		return err
	}
	s.store = store
	return nil
}

func (s *Service) ensurePrimitives() *primitive.Registry {
	scriptOptions := []script.Option{
		script.WithTimeoutMs(s.config.Script.TimeoutMs),
		script.WithEnv(s.config.Script.Env),
	}
	if s.scriptRunner != nil {
		scriptOptions = append(scriptOptions, script.WithRunner(s.scriptRunner))
	}
	s.library = action.Library(action.WithScriptOptions(scriptOptions...))
	ret := primitive.New()
	ret.Register(action.Path, s.library)
	for path, module := range s.modules {
		ret.Register(path, module)
	}
	return ret
}

// Runtime returns the runtime
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// Logger returns the service logger
func (s *Service) Logger() logging.Logger {
	return s.logger
}

// Modules returns registered module paths, sorted.
func (s *Service) Modules() []string {
	ret := s.runtime.primitives.Modules()
	sort.Strings(ret)
	return ret
}

// Close releases resources held by built-in primitives, such as the shell session of run_script.
func (s *Service) Close() error {
	var errs []error
	for _, member := range s.library {
		if closer, ok := member.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
