package cache

import (
	"context"
	"sync"

	"neroli_back_end/internal/models"
)

// memoryCartStore garde les paniers en mémoire du processus.
// Mêmes sémantiques que le store Redis, sans durabilité ; sert aux tests
// et aux environnements de dev sans Redis.
type memoryCartStore struct {
	mu    sync.Mutex
	carts map[string][]models.CartItem
}

func NewMemoryCartStore() CartStore {
	return &memoryCartStore{carts: make(map[string][]models.CartItem)}
}

func (s *memoryCartStore) snapshot(userID string) []models.CartItem {
	out := make([]models.CartItem, len(s.carts[userID]))
	copy(out, s.carts[userID])
	return out
}

func (s *memoryCartStore) List(_ context.Context, userID string) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(userID), nil
}

func (s *memoryCartStore) Upsert(_ context.Context, userID string, item models.CartItem) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[userID] = upsertItem(s.carts[userID], item)
	return s.snapshot(userID), nil
}

func (s *memoryCartStore) SetQuantity(_ context.Context, userID, productID string, quantity int) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[userID] = setItemQuantity(s.carts[userID], productID, quantity)
	return s.snapshot(userID), nil
}

func (s *memoryCartStore) Remove(_ context.Context, userID, productID string) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[userID] = removeItem(s.carts[userID], productID)
	return s.snapshot(userID), nil
}

func (s *memoryCartStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}
