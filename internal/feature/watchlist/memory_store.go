package watchlist

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore はプロセス内にウォッチリストを保持するStore実装です。
type MemoryStore struct {
	mu  sync.RWMutex
	set Set
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore は初期値を持つMemoryStoreを生成します。
func NewMemoryStore(tickers ...string) *MemoryStore {
	return &MemoryStore{set: NewSet(tickers...)}
}

// Load は保持している集合のコピーを返します。
func (m *MemoryStore) Load(ctx context.Context) (Set, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.set), nil
}

// Save は集合のコピーを保持します。
func (m *MemoryStore) Save(ctx context.Context, s Set) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set = maps.Clone(s)
	if m.set == nil {
		m.set = Set{}
	}
	return nil
}
