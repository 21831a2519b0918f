package event

import (
	"context"
	"errors"
	"sync"
)

// Handler receives published events.
type Handler func(ctx context.Context, event *Event[any]) error

// Service delivers events to handlers synchronously, in subscription order.
type Service struct {
	handlers []Handler
	mux      sync.RWMutex
}

func New(opts ...Option) *Service {
	ret := &Service{}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Subscribe adds a handler.
func (s *Service) Subscribe(handler Handler) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.handlers = append(s.handlers, handler)
}

// Publish calls every handler; all handlers run even when one fails and
// their errors are joined.
func (s *Service) Publish(ctx context.Context, event *Event[any]) error {
	s.mux.RLock()
	handlers := make([]Handler, len(s.handlers))
	copy(handlers, s.handlers)
	s.mux.RUnlock()
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SubscribeOf subscribes a handler receiving only events whose data is a T.
func SubscribeOf[T any](s *Service, handler func(ctx context.Context, event *Event[T]) error) {
	s.Subscribe(func(ctx context.Context, event *Event[any]) error {
		data, ok := event.Data.(T)
		if !ok {
			return nil
		}
		return handler(ctx, &Event[T]{
			Context:   event.Context,
			CreatedAt: event.CreatedAt,
			Metadata:  event.Metadata,
			Data:      data,
		})
	})
}

// Recorder collects events; useful as a handler in tests and embedding code.
type Recorder struct {
	events []*Event[any]
	mux    sync.Mutex
}

// Handle records an event.
func (r *Recorder) Handle(_ context.Context, event *Event[any]) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns recorded events.
func (r *Recorder) Events() []*Event[any] {
	r.mux.Lock()
	defer r.mux.Unlock()
	ret := make([]*Event[any], len(r.events))
	copy(ret, r.events)
	return ret
}
