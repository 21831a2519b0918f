package event

type Option func(s *Service)

// WithHandler subscribes handlers at construction.
func WithHandler(handlers ...Handler) Option {
	return func(s *Service) {
		s.handlers = append(s.handlers, handlers...)
	}
}
