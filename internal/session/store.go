package session

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/lumiskin/skincare-api/internal/service/routine"
)

// Limits on the ephemeral profile. Oldest entries drop first.
const (
	// FreshnessWindow bounds how old a stored snapshot may be. Older
	// snapshots are treated as absent and silently replaced.
	FreshnessWindow = 24 * time.Hour

	maxInteractions   = 100
	maxSearchHistory  = 20
	maxViewedProducts = 50
)

// Event describes a store mutation delivered to OnChange handlers.
type Event struct {
	Slot string // slotProfile or slotInteractions
	Op   string // "write" or "clear"
}

// Manager hands out session stores over a shared storage backend. One store
// per guest session ID; stores are cheap and need not be cached.
type Manager struct {
	storage Storage
}

// NewManager creates a manager over the given storage.
func NewManager(storage Storage) *Manager {
	return &Manager{storage: storage}
}

// Store returns the store bound to the given session ID.
func (m *Manager) Store(sessionID string) *Store {
	return &Store{
		storage:   m.storage,
		sessionID: sessionID,
		now:       time.Now,
		handlers:  make(map[int]func(Event)),
	}
}

// Store is the working profile of one browsing session. It owns the
// session's slots exclusively; all operations are synchronous.
type Store struct {
	storage   Storage
	sessionID string
	now       func() time.Time

	mu        sync.Mutex
	nextID    int
	handlers  map[int]func(Event)
}

func (s *Store) key(slot string) string {
	return s.sessionID + "/" + slot
}

func (s *Store) freshProfile() Profile {
	return Profile{StartedAt: s.now().UTC()}
}

// LoadProfile is the strict read path: an undecodable slot surfaces as
// ErrCorruptData and the caller chooses whether to default. An absent or
// stale snapshot is not an error; a fresh profile is returned instead.
func (s *Store) LoadProfile() (Profile, error) {
	raw, err := s.storage.Get(s.key(slotProfile))
	if err == ErrNotFound {
		return s.freshProfile(), nil
	}
	if err != nil {
		return s.freshProfile(), fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return s.freshProfile(), fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	if s.now().Sub(p.StartedAt) > FreshnessWindow {
		return s.freshProfile(), nil
	}
	return p, nil
}

// Profile returns the current snapshot, failing soft: corrupt storage
// yields a fresh profile rather than an error.
func (s *Store) Profile() Profile {
	p, _ := s.LoadProfile()
	return p
}

// mutate loads the profile (failing soft), applies fn and writes the result
// back, notifying observers on success.
func (s *Store) mutate(fn func(*Profile)) error {
	s.mu.Lock()
	p, _ := s.LoadProfile()
	fn(&p)
	raw, err := json.Marshal(p)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.storage.Set(s.key(slotProfile), raw); err != nil {
		s.mu.Unlock()
		return err
	}
	handlers := s.snapshotHandlers()
	s.mu.Unlock()

	notify(handlers, Event{Slot: slotProfile, Op: "write"})
	return nil
}

// SetSkinType records the guest's skin type.
func (s *Store) SetSkinType(skinType string) error {
	return s.mutate(func(p *Profile) {
		p.SkinType = skinType
	})
}

// AddConcerns appends concerns not already present, preserving order.
func (s *Store) AddConcerns(concerns ...string) error {
	return s.mutate(func(p *Profile) {
		for _, c := range concerns {
			if !containsString(p.Concerns, c) {
				p.Concerns = append(p.Concerns, c)
			}
		}
	})
}

// SetSurveyAnswers stores the quiz answers as an opaque document.
func (s *Store) SetSurveyAnswers(answers map[string]any) error {
	return s.mutate(func(p *Profile) {
		p.SurveyAnswers = answers
	})
}

// SaveProduct bookmarks a product. Saving an already-saved id is a no-op.
func (s *Store) SaveProduct(sp SavedProduct) error {
	return s.mutate(func(p *Profile) {
		for _, existing := range p.SavedProducts {
			if existing.ID == sp.ID {
				return
			}
		}
		if sp.SavedAt.IsZero() {
			sp.SavedAt = s.now().UTC()
		}
		p.SavedProducts = append(p.SavedProducts, sp)
	})
}

// AddRoutine stores a routine. Adding an already-present id is a no-op.
func (s *Store) AddRoutine(r routine.Routine) error {
	return s.mutate(func(p *Profile) {
		for _, existing := range p.Routines {
			if existing.ID == r.ID {
				return
			}
		}
		p.Routines = append(p.Routines, r)
	})
}

// RecordSearch prepends a search query, most recent first, deduplicated and
// capped.
func (s *Store) RecordSearch(query string) error {
	return s.mutate(func(p *Profile) {
		p.SearchHistory = prependCapped(p.SearchHistory, query, maxSearchHistory)
	})
}

// RecordView prepends a viewed product id, most recent first, deduplicated
// and capped.
func (s *Store) RecordView(productID string) error {
	return s.mutate(func(p *Profile) {
		p.ViewedProducts = prependCapped(p.ViewedProducts, productID, maxViewedProducts)
	})
}

// SetLocation records the guest's coarse location.
func (s *Store) SetLocation(loc Location) error {
	return s.mutate(func(p *Profile) {
		p.Location = &loc
	})
}

// SetPreference records a ranking preference such as budget_range or
// cruelty_free.
func (s *Store) SetPreference(key string, value any) error {
	return s.mutate(func(p *Profile) {
		if p.Preferences == nil {
			p.Preferences = make(map[string]any)
		}
		p.Preferences[key] = value
	})
}

// RecordInteraction appends to the interaction log, dropping the oldest
// entry once the cap is reached.
func (s *Store) RecordInteraction(kind, target string, data map[string]any) error {
	s.mu.Lock()
	log := s.loadInteractions()
	log = append(log, Interaction{Kind: kind, Target: target, Data: data, At: s.now().UTC()})
	if len(log) > maxInteractions {
		log = log[len(log)-maxInteractions:]
	}
	raw, err := json.Marshal(log)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.storage.Set(s.key(slotInteractions), raw); err != nil {
		s.mu.Unlock()
		return err
	}
	handlers := s.snapshotHandlers()
	s.mu.Unlock()

	notify(handlers, Event{Slot: slotInteractions, Op: "write"})
	return nil
}

// Interactions returns the interaction log, oldest first, failing soft.
func (s *Store) Interactions() []Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadInteractions()
}

func (s *Store) loadInteractions() []Interaction {
	raw, err := s.storage.Get(s.key(slotInteractions))
	if err != nil {
		return nil
	}
	var log []Interaction
	if err := json.Unmarshal(raw, &log); err != nil {
		return nil
	}
	return log
}

// Clear removes every slot of the session. Clearing is all-or-nothing from
// the caller's point of view and clearing an empty session is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	for _, slot := range []string{slotProfile, slotInteractions} {
		if err := s.storage.Delete(s.key(slot)); err != nil && err != ErrNotFound {
			s.mu.Unlock()
			return err
		}
	}
	handlers := s.snapshotHandlers()
	s.mu.Unlock()

	notify(handlers, Event{Slot: slotProfile, Op: "clear"})
	return nil
}

// OnChange registers a mutation handler and returns its unsubscribe
// function. Handlers run synchronously after the mutation is persisted.
func (s *Store) OnChange(handler func(Event)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.handlers[id] = handler
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.handlers, id)
		s.mu.Unlock()
	}
}

func (s *Store) snapshotHandlers() []func(Event) {
	out := make([]func(Event), 0, len(s.handlers))
	for _, h := range s.handlers {
		out = append(out, h)
	}
	return out
}

func notify(handlers []func(Event), ev Event) {
	for _, h := range handlers {
		h(ev)
	}
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// prependCapped puts value at the front, removes any earlier occurrence and
// trims to the cap.
func prependCapped(values []string, value string, limit int) []string {
	out := make([]string, 0, len(values)+1)
	out = append(out, value)
	for _, v := range values {
		if v != value {
			out = append(out, v)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
