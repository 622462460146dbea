// internal/replenish/profiles.go
package replenish

import (
	"sort"
	"sync"

	"github.com/andresuchdata/autowms/internal/domain"
)

// ProfileStore holds per-SKU demand profiles supplied by the external
// forecasting collaborator. The engine treats profiles as read-only input;
// Load replaces the whole set, there is no per-field mutation.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]domain.DemandProfile
}

// NewProfileStore creates an empty profile store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{profiles: make(map[string]domain.DemandProfile)}
}

// Load replaces the stored profiles.
func (s *ProfileStore) Load(profiles []domain.DemandProfile) {
	next := make(map[string]domain.DemandProfile, len(profiles))
	for _, p := range profiles {
		if p.SKU == "" {
			continue
		}
		next[p.SKU] = p
	}

	s.mu.Lock()
	s.profiles = next
	s.mu.Unlock()
}

// Get returns the profile for a SKU.
func (s *ProfileStore) Get(sku string) (domain.DemandProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[sku]
	return p, ok
}

// SKUs returns all profiled SKU codes in ascending order.
func (s *ProfileStore) SKUs() []string {
	s.mu.RLock()
	skus := make([]string, 0, len(s.profiles))
	for sku := range s.profiles {
		skus = append(skus, sku)
	}
	s.mu.RUnlock()

	sort.Strings(skus)
	return skus
}
