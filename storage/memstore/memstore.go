package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/mengeric/genmedia-server-go/genmedia"
)

// Store 是一个线程安全的内存实现，仅用于开发/轻量场景。
// 与引擎内置存储行为一致，供宿主显式注入或后台任务复用。
type Store struct {
	mu sync.RWMutex
	m  map[string]*genmedia.JobRecord
}

// New 创建内存存储。
func New() *Store { return &Store{m: map[string]*genmedia.JobRecord{}} }

func (s *Store) Put(ctx context.Context, rec *genmedia.JobRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	if cp.UpdatedAt.IsZero() {
		cp.UpdatedAt = time.Now()
	}
	s.m[rec.ID] = &cp
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*genmedia.JobRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.m[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, genmedia.ErrJobNotFound
}

func (s *Store) SetTerminal(ctx context.Context, id string, res genmedia.Result) (genmedia.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.m[id]
	if !ok {
		return genmedia.Result{}, genmedia.ErrJobNotFound
	}
	if r.Terminal != nil {
		return *r.Terminal, nil
	}
	cp := res
	r.Terminal = &cp
	r.UpdatedAt = time.Now()
	return cp, nil
}

func (s *Store) List(ctx context.Context) ([]genmedia.JobRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]genmedia.JobRecord, 0, len(s.m))
	for _, v := range s.m {
		out = append(out, *v)
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
	return nil
}
