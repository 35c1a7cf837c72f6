// Package rx provides a small observable model together with operators that
// hook into the lifetime of an observation: DoOnSubscribe, Finalize and
// WithLoading.
package rx

import (
	"context"

	"github.com/7vars/rxload"
)

var logger = rxload.NewLogger().WithField("pkg", "rx")

// Observable is a lazy sequence of values. Nothing happens until Observe is
// called, and every call to Observe is an independent observation.
type Observable[T any] interface {
	// Observe the sequence for as long as ctx is valid. next is called for
	// each item, complete is called once at the end with nil on success,
	// the failure otherwise or ctx.Err() after cancellation.
	//
	// next and complete are never called concurrently.
	Observe(ctx context.Context, next func(T), complete func(error))
}

// FuncObservable implements Observe with a function.
type FuncObservable[T any] func(context.Context, func(T), func(error))

func (f FuncObservable[T]) Observe(ctx context.Context, next func(T), complete func(error)) {
	f(ctx, next, complete)
}

// Operator transforms an observable into another one of the same type.
type Operator[T any] func(Observable[T]) Observable[T]

// Identity returns an operator that hands back its source untouched.
func Identity[T any]() Operator[T] {
	return func(src Observable[T]) Observable[T] {
		return src
	}
}

// Pipe applies ops to src from left to right.
func Pipe[T any](src Observable[T], ops ...Operator[T]) Observable[T] {
	for _, op := range ops {
		src = op(src)
	}
	return src
}
