package account

import (
	"fmt"
	"sort"
	"sync"
)

// slot guards one account. The store hands out exclusive access per slot so
// two accounts never contend on each other.
type slot struct {
	mu   sync.Mutex
	acct Account
}

// Store owns every registered account.
//
// The registry map is guarded by an RWMutex; lookups take the read side, so
// they never observe an account that is only half inserted. Each account
// then has its own mutex for read-modify-write work.
type Store struct {
	mu    sync.RWMutex
	slots map[string]*slot
}

func NewStore() *Store {
	return &Store{slots: make(map[string]*slot)}
}

// Register inserts a new account.
func (s *Store) Register(a Account) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("register account %q: %w", a.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.slots[a.ID]; ok {
		return fmt.Errorf("register account %q: %w", a.ID, ErrDuplicateAccount)
	}
	s.slots[a.ID] = &slot{acct: a}
	return nil
}

func (s *Store) lookup(id string) (*slot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sl, ok := s.slots[id]
	return sl, ok
}

// WithAccount runs fn with exclusive access to the live account. Changes
// fn makes are visible to everyone once it returns. The error fn returns
// is passed back unchanged.
//
// fn must not call back into the store for the same id.
func (s *Store) WithAccount(id string, fn func(*Account) error) error {
	sl, ok := s.lookup(id)
	if !ok {
		return fmt.Errorf("account %q: %w", id, ErrAccountNotFound)
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()
	return fn(&sl.acct)
}

// Snapshot returns a copy of the account. Later mutations do not affect it.
func (s *Store) Snapshot(id string) (Account, error) {
	sl, ok := s.lookup(id)
	if !ok {
		return Account{}, fmt.Errorf("account %q: %w", id, ErrAccountNotFound)
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.acct, nil
}

// Has reports whether id is registered.
func (s *Store) Has(id string) bool {
	_, ok := s.lookup(id)
	return ok
}

// IDs returns the registered ids in lexical order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.slots))
	for id := range s.slots {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.slots)
}
