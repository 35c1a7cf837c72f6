package rx

import (
	"fmt"
	"sync"
)

type eventLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *eventLog) add(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
}

func (l *eventLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}

// recorder is a Broadcaster[bool] writing every pushed value to a log.
type recorder struct {
	log         *eventLog
	panicOnTrue bool
}

func newRecorder() *recorder {
	return &recorder{log: &eventLog{}}
}

func (r *recorder) Push(v bool) {
	r.log.add("%t", v)
	if v && r.panicOnTrue {
		panic("indicator down")
	}
}

func (r *recorder) Subscribe(func(bool)) func() {
	return func() {}
}

func (r *recorder) values() []string {
	return r.log.snapshot()
}
