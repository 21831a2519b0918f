package execution

import (
	"context"
	"reflect"
)

var ContextKey = KeyOf[*Context]()

// WithContext returns ctx carrying the execution context.
func WithContext(ctx context.Context, exec *Context) context.Context {
	return context.WithValue(ctx, ContextKey, exec)
}

// ContextValue returns the value of the provided type from the context
func ContextValue[T any](ctx context.Context) T {
	key := KeyOf[T]()
	if value := ctx.Value(key); value != nil {
		if actual, ok := value.(T); ok {
			return actual
		}
	}
	var t T
	return t
}

// KeyOf returns the reflect.Type of the provided type
func KeyOf[T any]() reflect.Type {
	var a T
	return reflect.TypeOf(a)
}
