package rx

import (
	"context"
	"errors"
	"io"

	"github.com/7vars/rxload"
)

// FromSlice emits the items of slice in order and completes.
func FromSlice[T any](slice []T) Observable[T] {
	items := append([]T(nil), slice...)
	return FuncObservable[T](func(ctx context.Context, next func(T), complete func(error)) {
		go func() {
			for _, item := range items {
				if err := ctx.Err(); err != nil {
					complete(err)
					return
				}
				next(item)
			}
			complete(ctx.Err())
		}()
	})
}

// Just emits items in order and completes.
func Just[T any](items ...T) Observable[T] {
	return FromSlice(items)
}

// FromFunc calls f for every item. io.EOF completes the sequence, any other
// error fails it.
func FromFunc[T any](f func() (T, error)) Observable[T] {
	return FuncObservable[T](func(ctx context.Context, next func(T), complete func(error)) {
		go func() {
			for {
				if err := ctx.Err(); err != nil {
					complete(err)
					return
				}
				t, err := f()
				if err != nil {
					if errors.Is(err, io.EOF) {
						complete(nil)
						return
					}
					complete(err)
					return
				}
				next(t)
			}
		}()
	})
}

// Empty completes every observation without emitting.
func Empty[T any]() Observable[T] {
	return FuncObservable[T](func(_ context.Context, _ func(T), complete func(error)) {
		complete(nil)
	})
}

// Fail completes every observation with err without emitting.
func Fail[T any](err error) Observable[T] {
	return FuncObservable[T](func(_ context.Context, _ func(T), complete func(error)) {
		complete(err)
	})
}

// Never emits nothing and only completes once ctx is done.
func Never[T any]() Observable[T] {
	return FuncObservable[T](func(ctx context.Context, _ func(T), complete func(error)) {
		go func() {
			<-ctx.Done()
			complete(ctx.Err())
		}()
	})
}

// Defer calls factory on every observation and observes the result. A panic
// in factory fails the observation with a rxload.RuntimeErr, a nil result
// completes it.
func Defer[T any](factory func() Observable[T]) Observable[T] {
	return deferred("defer", factory)
}

// deferred is Defer with op recorded in the RuntimeErr of a panicking factory.
func deferred[T any](op string, factory func() Observable[T]) Observable[T] {
	return FuncObservable[T](func(ctx context.Context, next func(T), complete func(error)) {
		src, err := build(op, factory)
		if err != nil {
			complete(err)
			return
		}
		if src == nil {
			complete(nil)
			return
		}
		src.Observe(ctx, next, complete)
	})
}

func build[T any](op string, factory func() Observable[T]) (src Observable[T], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = rxload.Recovered(op, r)
		}
	}()
	return factory(), nil
}
