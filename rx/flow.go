package rx

import (
	"context"
	"sync"
)

// Map applies f to every item of src.
func Map[T, K any](src Observable[T], f func(T) K) Observable[K] {
	return FuncObservable[K](func(ctx context.Context, next func(K), complete func(error)) {
		src.Observe(ctx, func(t T) { next(f(t)) }, complete)
	})
}

// Filter forwards the items accepted by f.
func Filter[T any](f func(T) bool) Operator[T] {
	return func(src Observable[T]) Observable[T] {
		return FuncObservable[T](func(ctx context.Context, next func(T), complete func(error)) {
			src.Observe(ctx, func(t T) {
				if f(t) {
					next(t)
				}
			}, complete)
		})
	}
}

// Take forwards the first n items, then completes and cancels the source.
func Take[T any](n uint64) Operator[T] {
	return func(src Observable[T]) Observable[T] {
		return FuncObservable[T](func(ctx context.Context, next func(T), complete func(error)) {
			ctx, cancel := context.WithCancel(ctx)
			var once sync.Once
			done := func(err error) {
				once.Do(func() {
					cancel()
					complete(err)
				})
			}
			if n == 0 {
				done(nil)
				return
			}
			var count uint64
			src.Observe(ctx,
				func(t T) {
					if count >= n {
						return
					}
					count++
					next(t)
					if count == n {
						done(nil)
					}
				},
				func(err error) {
					if count >= n {
						err = nil
					}
					done(err)
				},
			)
		})
	}
}

// Catch turns errors accepted by f into a normal completion.
func Catch[T any](f func(error) bool) Operator[T] {
	return func(src Observable[T]) Observable[T] {
		return FuncObservable[T](func(ctx context.Context, next func(T), complete func(error)) {
			src.Observe(ctx, next, func(err error) {
				if err != nil && f(err) {
					complete(nil)
					return
				}
				complete(err)
			})
		})
	}
}
