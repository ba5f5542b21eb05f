package notification

import (
	"context"
	"sort"
	"sync"

	"salonbook/models"
)

// MemoryStore keeps relay state in process memory. It lives as long as the relay process.
type MemoryStore struct {
	mu      sync.Mutex
	subs    map[int]map[string]struct{}
	mailbox map[int][]models.RelayMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		subs:    make(map[int]map[string]struct{}),
		mailbox: make(map[int][]models.RelayMessage),
	}
}

func (m *MemoryStore) Subscribe(ctx context.Context, userID int, callbackURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.subs[userID] == nil {
		m.subs[userID] = make(map[string]struct{})
	}
	m.subs[userID][callbackURL] = struct{}{}
	return nil
}

func (m *MemoryStore) Unsubscribe(ctx context.Context, userID int, callbackURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.subs[userID], callbackURL)
	if len(m.subs[userID]) == 0 {
		delete(m.subs, userID)
	}
	return nil
}

func (m *MemoryStore) Subscriptions(ctx context.Context, userID int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs[userID]), nil
}

func (m *MemoryStore) Subscribers(ctx context.Context) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int, 0, len(m.subs))
	for id := range m.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func (m *MemoryStore) Enqueue(ctx context.Context, userID int, msg models.RelayMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mailbox[userID] = append(m.mailbox[userID], msg)
	return nil
}

func (m *MemoryStore) Pending(ctx context.Context, userID int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.mailbox[userID]), nil
}

func (m *MemoryStore) Drain(ctx context.Context, userID int) ([]models.RelayMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := m.mailbox[userID]
	delete(m.mailbox, userID)
	return msgs, nil
}
