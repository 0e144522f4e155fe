package lock

import (
	"context"
	"sync"
)

// LocalLocker serialises bookings per service inside one process.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[uint]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: map[uint]*slot{}}
}

func (l *LocalLocker) Lock(ctx context.Context, serviceID uint) (func(), error) {
	l.mu.Lock()
	s, ok := l.slots[serviceID]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[serviceID] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(serviceID, s, false)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() { l.release(serviceID, s, true) })
	}, nil
}

func (l *LocalLocker) release(serviceID uint, s *slot, held bool) {
	if held {
		<-s.ch
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.slots, serviceID)
	}
}
