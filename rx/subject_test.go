package rx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectPushOrder(t *testing.T) {
	s := NewSubject[int]()
	log := &eventLog{}
	s.Subscribe(func(i int) { log.add("a%d", i) })
	s.Subscribe(func(i int) { log.add("b%d", i) })

	s.Push(1)
	s.Push(2)
	assert.Equal(t, []string{"a1", "b1", "a2", "b2"}, log.snapshot())
}

func TestSubjectUnsubscribe(t *testing.T) {
	var s Subject[string]
	var got []string
	unsubscribe := s.Subscribe(func(v string) { got = append(got, v) })
	assert.Equal(t, 1, s.Len())

	s.Push("x")
	unsubscribe()
	unsubscribe()
	s.Push("y")

	assert.Equal(t, []string{"x"}, got)
	assert.Equal(t, 0, s.Len())
}

func TestSubjectUnsubscribeDuringPush(t *testing.T) {
	s := NewSubject[int]()
	var calls int
	var unsubscribe func()
	unsubscribe = s.Subscribe(func(int) {
		calls++
		unsubscribe()
	})
	s.Push(1)
	s.Push(2)
	assert.Equal(t, 1, calls)
}

func TestSubjectFilter(t *testing.T) {
	s := NewSubject[bool]()
	var got []bool
	s.SubscribeFilter(func(v bool) { got = append(got, v) }, func(v bool) bool { return !v })

	s.Push(true)
	s.Push(false)
	s.Push(true)
	assert.Equal(t, []bool{false}, got)
}

func TestSubjectClose(t *testing.T) {
	s := NewSubject[int]()
	var got []int
	s.Subscribe(func(i int) { got = append(got, i) })

	s.Close()
	s.Close()
	s.Push(1)
	assert.Empty(t, got)
	assert.Equal(t, 0, s.Len())

	s.Subscribe(func(i int) { got = append(got, i) })
	s.Push(2)
	assert.Empty(t, got)
	assert.Equal(t, 0, s.Len())
}

func TestSubjectObserveUntilCancel(t *testing.T) {
	s := NewSubject[int]()
	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	var got []int
	s.Observe(ctx, func(i int) { got = append(got, i) }, func(err error) { errs <- err })

	s.Push(1)
	s.Push(2)
	cancel()

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(waitFor):
		t.Fatal("observation not completed")
	}
	s.Push(3)
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 0, s.Len())
}

func TestSubjectObserveUntilClose(t *testing.T) {
	s := NewSubject[int]()
	errs := make(chan error, 2)
	s.Observe(context.Background(), func(int) {}, func(err error) { errs <- err })
	s.Observe(context.Background(), func(int) {}, func(err error) { errs <- err })

	s.Close()
	require.Len(t, errs, 2)
	assert.NoError(t, <-errs)
	assert.NoError(t, <-errs)

	s.Observe(context.Background(), func(int) {}, func(err error) { errs <- err })
	require.Len(t, errs, 1)
	assert.NoError(t, <-errs)
}

func TestSubjectAsObservable(t *testing.T) {
	s := NewSubject[int]()
	ctx, cancel := context.WithCancel(context.Background())
	obs := Pipe[int](s, Filter(func(i int) bool { return i%2 == 0 }), Take[int](2))

	done := make(chan []int, 1)
	go func() {
		items, _ := Collect(ctx, obs)
		done <- items
	}()
	defer cancel()

	require.Eventually(t, func() bool { return s.Len() == 1 }, waitFor, time.Millisecond)
	for i := 1; i <= 6; i++ {
		s.Push(i)
	}
	select {
	case items := <-done:
		assert.Equal(t, []int{2, 4}, items)
	case <-time.After(waitFor):
		t.Fatal("collect did not finish")
	}
}

func TestSubjectCloseFromObserver(t *testing.T) {
	s := NewSubject[bool]()
	errs := make(chan error, 1)
	var got []bool
	s.Observe(context.Background(), func(loading bool) {
		got = append(got, loading)
		if !loading {
			s.Close()
		}
	}, func(err error) { errs <- err })

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Push(true)
		s.Push(false)
	}()
	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("Close from inside next did not return")
	}

	require.Len(t, errs, 1)
	assert.NoError(t, <-errs)
	assert.Equal(t, []bool{true, false}, got)
	assert.Equal(t, 0, s.Len())
}

func TestSubjectPushFromObserver(t *testing.T) {
	s := NewSubject[int]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var got []int
	s.Observe(ctx, func(i int) {
		got = append(got, i)
		if i == 1 {
			s.Push(2)
		}
	}, func(error) {})

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Push(1)
	}()
	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("Push from inside next did not return")
	}
	assert.Equal(t, []int{1, 2}, got)
}
