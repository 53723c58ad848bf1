// Package memory implements the storage ports in process memory. It backs
// local development and tests; no data survives a restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type Store struct {
	mu           sync.Mutex
	nextID       int64
	transactions []core.Transaction
	categories   []core.Category
	goals        []core.Goal
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	return &Store{nextID: 1}
}

// Seed loads categories in bulk, typically the default set for a new user.
func (s *Store) Seed(userID int64, categories []core.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range categories {
		c.ID = s.nextID
		c.UserID = userID
		s.nextID++
		s.categories = append(s.categories, c)
	}
}

func (s *Store) CreateTransaction(_ context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID
	s.nextID++
	s.transactions = append(s.transactions, t)
	return t.ID, nil
}

func (s *Store) UpdateTransaction(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.transactions {
		if existing.ID == t.ID && existing.UserID == t.UserID {
			s.transactions[i] = t
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *Store) DeleteTransaction(_ context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.transactions {
		if t.ID == id && t.UserID == userID {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *Store) ListTransactions(_ context.Context, userID int64, f storage.TransactionFilter) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.transactions {
		if t.UserID != userID {
			continue
		}
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.CategoryID != 0 && t.CategoryID != f.CategoryID {
			continue
		}
		if !f.From.IsZero() && t.Date.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && t.Date.After(f.To) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) CreateCategory(_ context.Context, c core.Category) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextID
	s.nextID++
	s.categories = append(s.categories, c)
	return c.ID, nil
}

func (s *Store) UpdateCategory(_ context.Context, c core.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.categories {
		if existing.ID == c.ID && existing.UserID == c.UserID {
			s.categories[i] = c
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *Store) DeleteCategory(_ context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.categories {
		if c.ID == id && c.UserID == userID {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *Store) ListCategories(_ context.Context, userID int64) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Category
	for _, c := range s.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) CreateGoal(_ context.Context, g core.Goal) (int64, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	g.ID = s.nextID
	g.Current = core.Money{}
	s.nextID++
	s.goals = append(s.goals, g)
	return g.ID, nil
}

func (s *Store) UpdateGoal(_ context.Context, g core.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.goals {
		if existing.ID == g.ID && existing.UserID == g.UserID {
			// current progress is never replaced through edits
			g.Current = existing.Current
			s.goals[i] = g
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *Store) DeleteGoal(_ context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.goals {
		if g.ID == id && g.UserID == userID {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *Store) ListGoals(_ context.Context, userID int64) ([]core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Goal
	for _, g := range s.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Deadline.Equal(out[j].Deadline.Time) {
			return out[i].Deadline.Before(out[j].Deadline.Time)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
