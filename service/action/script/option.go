package script

// Option configures the run_script kind
type Option func(s *Service)

// WithRunner replaces the shell runner.
func WithRunner(runner Runner) Option {
	return func(s *Service) {
		s.runner = runner
	}
}

// WithTimeoutMs sets the timeout used when a section does not set timeout_ms.
func WithTimeoutMs(timeoutMs int) Option {
	return func(s *Service) {
		if timeoutMs > 0 {
			s.timeoutMs = timeoutMs
		}
	}
}

// WithEnv sets environment variables for the default local runner.
func WithEnv(env map[string]string) Option {
	return func(s *Service) {
		s.env = env
	}
}
