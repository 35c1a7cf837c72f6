package rx

import "context"

// ForEach observes src, calls f for every item and blocks until the
// observation completes.
func ForEach[T any](ctx context.Context, src Observable[T], f func(T)) error {
	errs := make(chan error, 1)
	src.Observe(ctx, f, func(err error) {
		errs <- err
	})
	return <-errs
}

// Collect returns every item of src. Items received before a failure are
// returned alongside the error.
func Collect[T any](ctx context.Context, src Observable[T]) ([]T, error) {
	items := make([]T, 0)
	err := ForEach(ctx, src, func(t T) {
		items = append(items, t)
	})
	return items, err
}

// Execute returns the last item of src, or the zero value if it emitted none.
func Execute[T any](ctx context.Context, src Observable[T]) (T, error) {
	var last T
	err := ForEach(ctx, src, func(t T) {
		last = t
	})
	return last, err
}
