package processor

import (
	"github.com/viant/mdflow/logging"
	"github.com/viant/mdflow/service/dao/session"
	"github.com/viant/mdflow/service/event"
	"github.com/viant/mdflow/service/primitive"
)

type Option func(*Service)

// WithConfig sets the configuration for the service
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithSessionStore sets the snapshot store
func WithSessionStore(store session.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithArtifacts sets the artifact loader
func WithArtifacts(artifacts Loader) Option {
	return func(s *Service) {
		s.artifacts = artifacts
	}
}

// WithPrimitives sets the primitives registry
func WithPrimitives(primitives *primitive.Registry) Option {
	return func(s *Service) {
		s.primitives = primitives
	}
}

// WithEventService sets the event service
func WithEventService(events *event.Service) Option {
	return func(s *Service) {
		s.events = events
	}
}

// WithLogger sets the logger
func WithLogger(logger logging.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}
