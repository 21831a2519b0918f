package artifact

import (
	"github.com/viant/mdflow/internal/directive"
	"github.com/viant/mdflow/internal/markdown"
)

// Option configures the loader
type Option func(s *Service)

// WithRenderer sets the template renderer
func WithRenderer(renderer *directive.Renderer) Option {
	return func(s *Service) {
		s.renderer = renderer
	}
}

// WithParser sets the markdown parser
func WithParser(parser *markdown.Parser) Option {
	return func(s *Service) {
		s.parser = parser
	}
}

// WithDefaultKind sets the artifact kind used when the head section names none.
func WithDefaultKind(kind string) Option {
	return func(s *Service) {
		s.defaultKind = kind
	}
}
