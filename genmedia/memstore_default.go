package genmedia

import (
	"context"
	"sync"
	"time"
)

// inMemoryStore 是包内置的线程安全内存存储，进程生命周期内保留记录。
// 设计：为了避免 import cycle，不依赖 storage 子包，实现最小的 Storage 接口；
// 读写均做值拷贝，调用方拿到的记录与存储内部互不共享。
type inMemoryStore struct {
	mu sync.RWMutex
	m  map[string]*JobRecord
}

// newDefaultMemStore 创建内置内存存储实现。
func newDefaultMemStore() Storage { return &inMemoryStore{m: map[string]*JobRecord{}} }

// Put 按 ID 插入或覆盖记录。
func (s *inMemoryStore) Put(ctx context.Context, rec *JobRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	if cp.UpdatedAt.IsZero() {
		cp.UpdatedAt = time.Now()
	}
	s.m[rec.ID] = &cp
	return nil
}

// Get 按 ID 读取记录。
func (s *inMemoryStore) Get(ctx context.Context, id string) (*JobRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.m[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, ErrJobNotFound
}

// SetTerminal 写入终态结果，先写者胜。
func (s *inMemoryStore) SetTerminal(ctx context.Context, id string, res Result) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.m[id]
	if !ok {
		return Result{}, ErrJobNotFound
	}
	if r.Terminal != nil {
		return *r.Terminal, nil
	}
	cp := res
	r.Terminal = &cp
	r.UpdatedAt = time.Now()
	return cp, nil
}

// List 列出全部记录。
func (s *inMemoryStore) List(ctx context.Context) ([]JobRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]JobRecord, 0, len(s.m))
	for _, v := range s.m {
		out = append(out, *v)
	}
	return out, nil
}

// Delete 按 ID 删除记录。
func (s *inMemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
	return nil
}
