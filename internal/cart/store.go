package cart

import (
	"sync"

	"github.com/NEXESMISSION/KESTI-sub001/internal/domain"
)

// Store holds one Cart per session. Carts live only in process memory and
// die with it: the session model has no durability requirement, a reload
// starts from an empty cart.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{
		carts: make(map[string]*Cart),
	}
}

// cart returns the session's cart, creating it on first use. Callers must
// hold s.mu.
func (s *Store) cart(sessionID string) *Cart {
	c, ok := s.carts[sessionID]
	if !ok {
		c = New(sessionID)
		s.carts[sessionID] = c
	}
	return c
}

func (s *Store) Add(sessionID string, p domain.Product, quantity int, unitQuantity *float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart(sessionID).Add(p, quantity, unitQuantity)
}

func (s *Store) Remove(sessionID string, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart(sessionID).Remove(productID)
}

func (s *Store) UpdateQuantity(sessionID string, productID int64, quantity int, unitQuantity *float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart(sessionID).UpdateQuantity(productID, quantity, unitQuantity)
}

func (s *Store) Increment(sessionID string, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart(sessionID).Increment(productID)
}

func (s *Store) Decrement(sessionID string, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart(sessionID).Decrement(productID)
}

func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart(sessionID).Clear()
}

// View returns a copy of the session's cart safe to serialize without
// holding the store lock.
func (s *Store) View(sessionID string) Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[sessionID]
	if !ok {
		return Cart{SessionID: sessionID}
	}
	view := *c
	view.Lines = append([]domain.CartLine(nil), c.Lines...)
	return view
}

// Snapshot returns a copy of the session's lines and their summed total
// for the checkout path.
func (s *Store) Snapshot(sessionID string) ([]domain.CartLine, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[sessionID]
	if !ok {
		return nil, 0
	}
	lines := append([]domain.CartLine(nil), c.Lines...)
	return lines, c.TotalPrice()
}
