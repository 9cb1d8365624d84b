package activities

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	apperrors "activity-signup/internal/common/errors"
	"activity-signup/pkg/registry"
)

// Registry is the set of activities known to the process. The key set is fixed
// at construction; rosters change through Enroll and Unenroll only.
type Registry struct {
	mu              sync.RWMutex
	activities      map[string]*Activity
	enforceCapacity bool
}

type Option func(*Registry)

// WithCapacityEnforcement makes Enroll reject signups once MaxParticipants is reached.
func WithCapacityEnforcement(enabled bool) Option {
	return func(r *Registry) {
		r.enforceCapacity = enabled
	}
}

// New builds a registry from seed activities.
func New(seed []Activity, opts ...Option) (*Registry, error) {
	r := &Registry{activities: make(map[string]*Activity, len(seed))}
	for _, opt := range opts {
		opt(r)
	}

	for _, a := range seed {
		if strings.TrimSpace(a.Name) == "" {
			return nil, fmt.Errorf("activity name is empty")
		}
		if _, dup := r.activities[a.Name]; dup {
			return nil, fmt.Errorf("duplicate activity %q", a.Name)
		}
		if a.MaxParticipants <= 0 {
			return nil, fmt.Errorf("activity %q: max_participants must be positive, got %d", a.Name, a.MaxParticipants)
		}
		stored := a.clone()
		seen := make(map[string]bool, len(stored.Participants))
		for i, email := range stored.Participants {
			email = normalizeEmail(email)
			if seen[email] {
				return nil, fmt.Errorf("activity %q: participant %q listed twice", a.Name, email)
			}
			seen[email] = true
			stored.Participants[i] = email
		}
		r.activities[a.Name] = &stored
	}

	return r, nil
}

// FromCatalog converts a catalog into a registry.
func FromCatalog(catalog *registry.ActivityCatalog, opts ...Option) (*Registry, error) {
	seed := make([]Activity, 0, len(catalog.Activities))
	for _, a := range catalog.Activities {
		seed = append(seed, Activity{
			Name:            a.Name,
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    a.Participants,
		})
	}
	return New(seed, opts...)
}

// CapacityEnforced reports whether Enroll checks MaxParticipants.
func (r *Registry) CapacityEnforced() bool {
	return r.enforceCapacity
}

// List returns a snapshot of every activity keyed by name.
func (r *Registry) List() map[string]Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Activity, len(r.activities))
	for name, a := range r.activities {
		out[name] = a.clone()
	}
	return out
}

// Names returns the activity names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.activities))
	for name := range r.activities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a snapshot of one activity.
func (r *Registry) Get(name string) (Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.activities[name]
	if !ok {
		return Activity{}, apperrors.NewActivityNotFoundError(name)
	}
	return a.clone(), nil
}

// Enroll appends email to the roster of the named activity and returns the
// updated snapshot.
func (r *Registry) Enroll(name, email string) (Activity, error) {
	email = normalizeEmail(email)

	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[name]
	if !ok {
		return Activity{}, apperrors.NewActivityNotFoundError(name)
	}
	if a.HasParticipant(email) {
		return Activity{}, apperrors.NewAlreadySignedUpError(name, email)
	}
	if r.enforceCapacity && len(a.Participants) >= a.MaxParticipants {
		return Activity{}, apperrors.NewActivityFullError(name, a.MaxParticipants)
	}

	a.Participants = append(a.Participants, email)
	return a.clone(), nil
}

// Unenroll removes email from the roster of the named activity and returns the
// updated snapshot. The order of the remaining participants is kept.
func (r *Registry) Unenroll(name, email string) (Activity, error) {
	email = normalizeEmail(email)

	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[name]
	if !ok {
		return Activity{}, apperrors.NewActivityNotFoundError(name)
	}
	idx := slices.Index(a.Participants, email)
	if idx < 0 {
		return Activity{}, apperrors.NewNotSignedUpError(name, email)
	}

	a.Participants = slices.Delete(a.Participants, idx, idx+1)
	return a.clone(), nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
