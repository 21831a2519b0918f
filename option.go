package mdflow

import (
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/mdflow/logging"
	"github.com/viant/mdflow/service/action/script"
	"github.com/viant/mdflow/service/dao/session"
	"github.com/viant/mdflow/service/event"
	"github.com/viant/mdflow/service/primitive"
	"github.com/viant/mdflow/service/world"
	"github.com/viant/mdflow/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures the mdflow service
type Option func(s *Service)

// WithConfig sets the configuration; nil keeps DefaultConfig.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithWorld registers a world in addition to the configured ones.
func WithWorld(w world.World) Option {
	return func(s *Service) {
		s.worlds = append(s.worlds, w)
	}
}

// WithSessionStore sets the session store, overriding Config.Session.URL.
func WithSessionStore(store session.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithModule registers a primitives module under a dotted path.
func WithModule(path string, module primitive.Module) Option {
	return func(s *Service) {
		s.modules[path] = module
	}
}

// WithLogger sets the logger, overriding Config.Log.
func WithLogger(logger logging.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithEventHandler subscribes handlers to emitted events.
func WithEventHandler(handlers ...event.Handler) Option {
	return func(s *Service) {
		s.handlers = append(s.handlers, handlers...)
	}
}

// WithScriptRunner replaces the shell runner of run_script.
func WithScriptRunner(runner script.Runner) Option {
	return func(s *Service) {
		s.scriptRunner = runner
	}
}

// WithFileSystem sets the afs service used by worlds and the session store.
func WithFileSystem(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithStorageOptions passes storage options (for example an *embed.FS) to configured worlds.
func WithStorageOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.storageOptions = append(s.storageOptions, options...)
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile is empty the
// stdout exporter is used; otherwise spans are written to the supplied file path.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		s.tracingErr = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.tracingErr = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
