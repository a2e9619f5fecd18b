package cart

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrNoSession = errors.New("cart session id is empty")

// Store keeps one cart per cart session. Load returns an empty cart for an
// unknown session.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, c *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore keeps carts in process memory. Carts are lost on restart. With a
// positive ttl a cart not saved for ttl is dropped, like a Redis key expiring.
type MemoryStore struct {
	mu        sync.Mutex
	carts     map[string]memoryEntry
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

type memoryEntry struct {
	cart    Cart
	savedAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{carts: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

func (s *MemoryStore) expired(e memoryEntry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.savedAt) >= s.ttl
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.carts[sessionID]
	if !ok {
		return New(), nil
	}
	if s.expired(entry, s.now()) {
		delete(s.carts, sessionID)
		return New(), nil
	}

	// Hand out a copy so callers mutate their own value until Save.
	c := &Cart{IsOpen: entry.cart.IsOpen, Items: make([]LineItem, len(entry.cart.Items))}
	copy(c.Items, entry.cart.Items)
	return c, nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, c *Cart) error {
	if sessionID == "" {
		return ErrNoSession
	}

	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	s.carts[sessionID] = memoryEntry{cart: Cart{IsOpen: c.IsOpen, Items: items}, savedAt: now}
	return nil
}

// sweep drops expired carts at most once per ttl. Callers hold mu.
func (s *MemoryStore) sweep(now time.Time) {
	if s.ttl <= 0 || now.Sub(s.lastSweep) < s.ttl {
		return
	}
	for id, entry := range s.carts {
		if s.expired(entry, now) {
			delete(s.carts, id)
		}
	}
	s.lastSweep = now
}

// Len reports how many carts are held, expired ones included until swept.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()
	return nil
}
