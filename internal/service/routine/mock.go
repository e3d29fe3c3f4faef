package routine

import (
	"context"
	"sync"
	"time"
)

// MockService implements Service for unit tests.
type MockService struct {
	mu        sync.Mutex
	rows      map[string]map[string]Routine // userID -> routineID -> row
	ListErr   error
	InsertErr error
	// Delay is applied before each call, to exercise caller timeouts.
	Delay time.Duration
}

// NewMockService creates a new mock service.
func NewMockService() *MockService {
	return &MockService{rows: make(map[string]map[string]Routine)}
}

func (m *MockService) wait(ctx context.Context) error {
	if m.Delay <= 0 {
		return nil
	}
	select {
	case <-time.After(m.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *MockService) ListIDs(ctx context.Context, userID string) ([]string, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for id := range m.rows[userID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *MockService) InsertBatch(ctx context.Context, userID string, routines []Routine) error {
	if err := m.wait(ctx); err != nil {
		return err
	}
	if m.InsertErr != nil {
		return m.InsertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rows[userID] == nil {
		m.rows[userID] = make(map[string]Routine)
	}
	for _, r := range routines {
		if _, exists := m.rows[userID][r.ID]; exists {
			continue
		}
		m.rows[userID][r.ID] = r
	}
	return nil
}

// Seed stores rows directly, bypassing insert semantics.
func (m *MockService) Seed(userID string, routines ...Routine) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rows[userID] == nil {
		m.rows[userID] = make(map[string]Routine)
	}
	for _, r := range routines {
		m.rows[userID][r.ID] = r
	}
}

// Stored returns the rows currently held for the user.
func (m *MockService) Stored(userID string) []Routine {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Routine
	for _, r := range m.rows[userID] {
		out = append(out, r)
	}
	return out
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
