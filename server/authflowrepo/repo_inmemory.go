package authflowrepo

import (
	"errors"
	"sync"
	"time"
)

// maxAge bounds how long an authorization round trip may take before the
// state is discarded.
const maxAge = 10 * time.Minute

// InMemoryRepo is a thread-safe in-memory implementation of the Repo
// interface. Pending logins are process-local; a restart mid-flow simply
// forces the user to click login again.
type InMemoryRepo struct {
	mu     sync.RWMutex
	states map[string]*LoginState
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		states: make(map[string]*LoginState),
	}
}

// Upsert stores or updates a pending login, pruning stale entries as it goes.
func (r *InMemoryRepo) Upsert(state string, loginState *LoginState) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}
	if loginState == nil {
		return errors.New("loginState cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	for key, pending := range r.states {
		if pending.CreatedAt.Before(cutoff) {
			delete(r.states, key)
		}
	}

	copied := *loginState
	r.states[state] = &copied
	return nil
}

// Get retrieves a pending login by state parameter.
func (r *InMemoryRepo) Get(state string) (*LoginState, error) {
	if state == "" {
		return nil, errors.New("state cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	loginState, exists := r.states[state]
	if !exists {
		return nil, errors.New("state not found")
	}
	if time.Since(loginState.CreatedAt) > maxAge {
		return nil, errors.New("state expired")
	}

	copied := *loginState
	return &copied, nil
}

// Delete removes a pending login.
func (r *InMemoryRepo) Delete(state string) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.states, state)
	return nil
}
