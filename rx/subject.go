package rx

import (
	"context"
	"sync"
)

// Broadcaster pushes values to every listener attached to it.
type Broadcaster[T any] interface {
	Push(T)
	// Subscribe attaches listener and returns a function detaching it.
	Subscribe(listener func(T)) (unsubscribe func())
}

type subscription[T any] struct {
	id       uint64
	listener func(T)
	filter   func(T) bool
	close    func()
}

// Subject is a synchronous Broadcaster. Push delivers on the caller's
// goroutine to the listeners present when Push was called, in subscription
// order. Panics raised by listeners are not recovered.
//
// A Subject is also an Observable: each observation receives the values
// pushed while it is active. The zero value is ready to use.
type Subject[T any] struct {
	mu            sync.RWMutex
	lastID        uint64
	closed        bool
	subscriptions []*subscription[T]
}

// NewSubject returns an empty Subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Push delivers v to every listener and observation attached to s. It is a
// no-op once s is closed.
func (s *Subject[T]) Push(v T) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return
	}
	subs := make([]*subscription[T], len(s.subscriptions))
	copy(subs, s.subscriptions)
	s.mu.RUnlock()

	for _, sub := range subs {
		if sub.filter == nil || sub.filter(v) {
			sub.listener(v)
		}
	}
}

// Subscribe attaches listener for every pushed value. On a closed Subject it
// attaches nothing and returns a no-op.
func (s *Subject[T]) Subscribe(listener func(T)) func() {
	return s.SubscribeFilter(listener, nil)
}

// SubscribeFilter attaches listener for the values accepted by filter. A nil
// filter accepts everything.
func (s *Subject[T]) SubscribeFilter(listener func(T), filter func(T) bool) func() {
	sub, ok := s.add(listener, filter, nil)
	if !ok {
		return func() {}
	}
	return func() { s.remove(sub.id) }
}

func (s *Subject[T]) add(listener func(T), filter func(T) bool, closeFn func()) (*subscription[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false
	}
	s.lastID++
	sub := &subscription[T]{
		id:       s.lastID,
		listener: listener,
		filter:   filter,
		close:    closeFn,
	}
	s.subscriptions = append(s.subscriptions, sub)
	return sub, true
}

func (s *Subject[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subscriptions {
		if sub.id == id {
			s.subscriptions = append(s.subscriptions[:i], s.subscriptions[i+1:]...)
			return
		}
	}
}

// Len returns the number of attached listeners.
func (s *Subject[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscriptions)
}

// Close detaches every listener and completes every observation. Push is a
// no-op afterwards.
func (s *Subject[T]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	subs := s.subscriptions
	s.subscriptions = nil
	s.mu.Unlock()

	for _, sub := range subs {
		if sub.close != nil {
			sub.close()
		}
	}
}

// Observe forwards every value pushed while the observation is active. It
// completes with nil on Close and with ctx.Err() once ctx is done. next and
// complete run without any lock held, so they may Push to or Close s. A
// cancellation may complete the observation while a concurrent Push is still
// inside next.
func (s *Subject[T]) Observe(ctx context.Context, next func(T), complete func(error)) {
	var (
		mu   sync.Mutex
		once sync.Once
		done bool
		stop func() bool
	)
	deliver := func(v T) {
		mu.Lock()
		ended := done
		mu.Unlock()
		if !ended {
			next(v)
		}
	}
	finish := func(err error) {
		once.Do(func() {
			mu.Lock()
			done = true
			mu.Unlock()
			complete(err)
		})
	}

	sub, ok := s.add(deliver, nil, func() {
		mu.Lock()
		st := stop
		mu.Unlock()
		if st != nil {
			st()
		}
		finish(nil)
	})
	if !ok {
		complete(nil)
		return
	}
	st := context.AfterFunc(ctx, func() {
		s.remove(sub.id)
		finish(ctx.Err())
	})
	mu.Lock()
	stop = st
	ended := done
	mu.Unlock()
	if ended {
		st()
	}
}
