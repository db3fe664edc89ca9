package session

import (
	"context"
	"sync"
	"time"
)

type memItem struct {
	userID  int64
	expires time.Time
	noexp   bool
}

// MemoryStore keeps sessions in process memory. Expired entries are dropped
// lazily on Get and swept periodically by a janitor goroutine.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memItem
	stop  chan struct{}
	once  sync.Once
}

// NewMemoryStore returns an in-process session store. sweep controls how often
// expired entries are reclaimed; sweep <= 0 disables the janitor.
func NewMemoryStore(sweep time.Duration) *MemoryStore {
	s := &MemoryStore{items: map[string]memItem{}, stop: make(chan struct{})}
	if sweep > 0 {
		go s.janitor(sweep)
	}
	return s
}

func (s *MemoryStore) janitor(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-t.C:
			now := time.Now()
			s.mu.Lock()
			for k, it := range s.items {
				if !it.noexp && now.After(it.expires) {
					delete(s.items, k)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Stop halts the janitor. Safe to call more than once.
func (s *MemoryStore) Stop() { s.once.Do(func() { close(s.stop) }) }

func (s *MemoryStore) Set(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	_ = ctx
	it := memItem{userID: userID}
	if ttl <= 0 {
		it.noexp = true
	} else {
		it.expires = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.items[token] = it
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (int64, bool, error) {
	_ = ctx
	s.mu.RLock()
	it, ok := s.items[token]
	s.mu.RUnlock()
	if !ok {
		return 0, false, nil
	}
	if !it.noexp && time.Now().After(it.expires) {
		s.mu.Lock()
		delete(s.items, token)
		s.mu.Unlock()
		return 0, false, nil
	}
	return it.userID, true, nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	_ = ctx
	s.mu.Lock()
	delete(s.items, token)
	s.mu.Unlock()
	return nil
}
