package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chamados/dashboard/internal/analytics"
	"github.com/chamados/dashboard/internal/models"
)

// Store holds the dataset the dashboard is currently showing. A dataset is
// never mutated after Replace, so readers share it without copying.
type Store struct {
	mu      sync.RWMutex
	current *models.Dataset
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// Replace swaps in a freshly analysed upload and returns it.
func (s *Store) Replace(source string, a analytics.Analysis) models.Dataset {
	ds := &models.Dataset{
		ID:       uuid.NewString(),
		Source:   source,
		LoadedAt: s.now().UTC(),
		Tickets:  a.Tickets,
		Result:   a.Result,
	}
	s.mu.Lock()
	s.current = ds
	s.mu.Unlock()
	return *ds
}

func (s *Store) Current() (models.Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.Dataset{}, false
	}
	return *s.current, true
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}
