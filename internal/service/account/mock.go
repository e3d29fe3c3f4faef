package account

import (
	"context"
	"sync"
	"time"
)

// MockService implements Service for unit tests. Update payloads are applied
// to in-memory profiles with the same merge semantics as the Firestore store.
type MockService struct {
	mu       sync.RWMutex
	profiles map[string]*Profile

	GetErr    error
	UpdateErr error
	// Updates records every payload passed to Update, in order.
	Updates []map[string]any
}

// NewMockService creates a new mock service.
func NewMockService() *MockService {
	return &MockService{profiles: make(map[string]*Profile)}
}

func (m *MockService) Get(_ context.Context, userID string) (*Profile, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, exists := m.profiles[userID]
	if !exists {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MockService) Update(_ context.Context, userID string, fields map[string]any) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Updates = append(m.Updates, fields)

	p, exists := m.profiles[userID]
	if !exists {
		p = &Profile{ID: userID, Preferences: make(map[string]any), CreatedAt: time.Now().UTC()}
		m.profiles[userID] = p
	}

	for k, v := range fields {
		switch k {
		case FieldSkinType:
			if s, ok := v.(string); ok {
				p.SkinType = s
			}
		case FieldConcerns:
			if c, ok := v.([]string); ok {
				p.Concerns = c
			}
		case FieldPreferences:
			if prefs, ok := v.(map[string]any); ok {
				if p.Preferences == nil {
					p.Preferences = make(map[string]any)
				}
				for pk, pv := range prefs {
					p.Preferences[pk] = pv
				}
			}
		case FieldUpdatedAt:
			if t, ok := v.(time.Time); ok {
				p.UpdatedAt = t
			}
		}
	}
	return nil
}

// Seed stores a profile directly.
func (m *MockService) Seed(p *Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ID] = p
}

// Stored returns the current in-memory profile, or nil.
func (m *MockService) Stored(userID string) *Profile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profiles[userID]
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
