package rx

import (
	"context"
	"sync"
)

// DoOnSubscribe runs onSubscribe each time the resulting observable is
// observed, before src is observed. Building the observable does not call
// it. A panic in onSubscribe fails that observation with a
// rxload.RuntimeErr and src is not observed.
func DoOnSubscribe[T any](onSubscribe func()) Operator[T] {
	return DoOnSubscribeErr[T](func() error {
		onSubscribe()
		return nil
	})
}

// DoOnSubscribeErr is DoOnSubscribe for callbacks that can fail. The
// returned error becomes the terminal error of the observation.
func DoOnSubscribeErr[T any](onSubscribe func() error) Operator[T] {
	return func(src Observable[T]) Observable[T] {
		return deferred("doOnSubscribe", func() Observable[T] {
			logger.WithField("operator", "doOnSubscribe").Debug("subscribed")
			if err := onSubscribe(); err != nil {
				return Fail[T](err)
			}
			return src
		})
	}
}

// Finalize runs finalizer exactly once per observation: after the terminal
// signal has been delivered, or as soon as ctx is cancelled, whichever comes
// first. Items arriving after cancellation are dropped. A cancellation
// during next defers finalizer until that next has returned.
func Finalize[T any](finalizer func()) Operator[T] {
	return func(src Observable[T]) Observable[T] {
		return FuncObservable[T](func(ctx context.Context, next func(T), complete func(error)) {
			var (
				once      sync.Once
				mu        sync.Mutex
				ended     bool
				cancelled bool
				inflight  int
				stop      func() bool
			)
			finalize := func() {
				once.Do(func() {
					logger.WithField("operator", "finalize").Debug("finalized")
					finalizer()
				})
			}
			onCancel := func() {
				mu.Lock()
				cancelled = true
				idle := inflight == 0
				mu.Unlock()
				if idle {
					finalize()
				}
			}

			src.Observe(ctx,
				func(t T) {
					mu.Lock()
					if cancelled || ctx.Err() != nil {
						mu.Unlock()
						return
					}
					inflight++
					mu.Unlock()

					next(t)

					mu.Lock()
					inflight--
					pending := cancelled && inflight == 0
					mu.Unlock()
					if pending {
						finalize()
					}
				},
				func(err error) {
					mu.Lock()
					ended = true
					st := stop
					mu.Unlock()
					if st != nil {
						st()
					}
					defer finalize()
					complete(err)
				},
			)

			// the cancellation watch starts after src.Observe has returned,
			// finalizer must not run before the subscribe side effects of src
			mu.Lock()
			defer mu.Unlock()
			if !ended {
				stop = context.AfterFunc(ctx, onCancel)
			}
		})
	}
}

// WithLoading pushes true to indicator when an observation starts and false
// exactly once when it ends by completion, error or cancellation. Items and
// errors pass through unchanged. Without an indicator the source is returned
// as is.
func WithLoading[T any](indicator Broadcaster[bool]) Operator[T] {
	if isNil(indicator) {
		return Identity[T]()
	}
	return func(src Observable[T]) Observable[T] {
		return Pipe(src,
			DoOnSubscribe[T](func() { indicator.Push(true) }),
			Finalize[T](func() { indicator.Push(false) }),
		)
	}
}
