package tokens

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps the token for the lifetime of the process.
type MemoryStore struct {
	mu   sync.Mutex
	info Info
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load(context.Context) (Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.info, nil
}

func (m *MemoryStore) Save(_ context.Context, token, portfolioID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.info = Info{Token: token, PortfolioID: portfolioID, SavedAt: time.Now().UTC()}
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.info = Info{}
	return nil
}
