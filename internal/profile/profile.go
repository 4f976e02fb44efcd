// Package profile holds the known uploader profiles and selects the active
// one for a request.
package profile

import (
	"fmt"

	"github.com/mbelyaev/ferry/internal/common"
	"github.com/mbelyaev/ferry/internal/models"
)

// Store is an immutable set of known profiles, loaded from settings at
// startup.
type Store struct {
	byID  map[string]models.Profile
	order []string
}

func NewStore(profiles []models.Profile) *Store {
	s := &Store{byID: make(map[string]models.Profile, len(profiles))}
	for _, p := range profiles {
		if _, dup := s.byID[p.ID]; dup {
			continue
		}
		s.byID[p.ID] = p
		s.order = append(s.order, p.ID)
	}
	return s
}

// Get returns the profile with the given id.
func (s *Store) Get(id string) (models.Profile, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// All returns the known profiles in their configured order.
func (s *Store) All() []models.Profile {
	out := make([]models.Profile, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Resolver selects the active profile for one request.
type Resolver struct {
	store     *Store
	defaultID string
}

func NewResolver(store *Store, defaultID string) *Resolver {
	return &Resolver{store: store, defaultID: defaultID}
}

// Resolve picks the profile to use. A test profile, when supplied, always
// wins. Otherwise the explicit id is used if given, else the configured
// default. Misses are reported through two distinct sentinels, because the
// remedy differs: common.ErrProfileNotFound means a specific id must be
// fixed, common.ErrNoDefaultProfile means no usable profile is configured
// at all.
func (r *Resolver) Resolve(explicitID string, test *models.Profile) (models.Profile, error) {
	if test != nil {
		return *test, nil
	}

	if explicitID != "" {
		p, ok := r.store.Get(explicitID)
		if !ok {
			return models.Profile{}, fmt.Errorf("profile %q: %w", explicitID, common.ErrProfileNotFound)
		}
		return p, nil
	}

	if r.defaultID == "" {
		return models.Profile{}, common.ErrNoDefaultProfile
	}
	p, ok := r.store.Get(r.defaultID)
	if !ok {
		return models.Profile{}, fmt.Errorf("default profile %q: %w", r.defaultID, common.ErrNoDefaultProfile)
	}
	return p, nil
}
