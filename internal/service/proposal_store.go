package service

import (
	"sync"
	"time"

	"github.com/noah-isme/sma-timetable-dss/internal/planner"
)

type proposal struct {
	ID          string
	Constraints planner.Constraints
	Options     []planner.Option
	GeneratedAt time.Time
	ExpiresAt   time.Time
}

func (p proposal) option(id string) (planner.Option, bool) {
	for _, opt := range p.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return planner.Option{}, false
}

type proposalStore struct {
	mu    sync.RWMutex
	items map[string]proposal
	now   func() time.Time
}

func newProposalStore(now func() time.Time) *proposalStore {
	return &proposalStore{items: make(map[string]proposal), now: now}
}

func (s *proposalStore) Save(p proposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[p.ID] = p
}

func (s *proposalStore) Get(id string) (proposal, bool) {
	s.mu.RLock()
	p, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return proposal{}, false
	}
	if s.now().After(p.ExpiresAt) {
		s.Delete(id)
		return proposal{}, false
	}
	return p, true
}

func (s *proposalStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

// Sweep drops expired proposals and reports how many were removed.
func (s *proposalStore) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, p := range s.items {
		if now.After(p.ExpiresAt) {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}

func (s *proposalStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
