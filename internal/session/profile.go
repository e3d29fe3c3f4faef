package session

import (
	"time"

	"github.com/lumiskin/skincare-api/internal/service/routine"
)

// SavedProduct is a product the guest bookmarked while browsing. ID is the
// merge key; a product is never stored twice.
type SavedProduct struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Brand    string    `json:"brand"`
	Category string    `json:"category"`
	SavedAt  time.Time `json:"savedAt"`
}

// Location is an optional coarse location the guest provided.
type Location struct {
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
	Zip   string `json:"zip,omitempty"`
}

// Interaction is one entry of the capped interaction log.
type Interaction struct {
	Kind   string         `json:"kind"`
	Target string         `json:"target"`
	Data   map[string]any `json:"data,omitempty"`
	At     time.Time      `json:"at"`
}

// Profile is the ephemeral working profile owned by a single browsing
// session. It is destroyed on explicit clear or after the freshness window.
type Profile struct {
	SkinType       string            `json:"skinType,omitempty"`
	Concerns       []string          `json:"concerns,omitempty"`
	SurveyAnswers  map[string]any    `json:"surveyAnswers,omitempty"`
	SavedProducts  []SavedProduct    `json:"savedProducts,omitempty"`
	Routines       []routine.Routine `json:"routines,omitempty"`
	SearchHistory  []string          `json:"searchHistory,omitempty"`
	ViewedProducts []string          `json:"viewedProducts,omitempty"`
	Location       *Location         `json:"location,omitempty"`
	Preferences    map[string]any    `json:"preferences,omitempty"`
	StartedAt      time.Time         `json:"startedAt"`
}

// HasMergeableData reports whether any field the reconciliation engine
// merges carries data. Preferences are excluded: they only steer ranking.
func (p *Profile) HasMergeableData() bool {
	return p.SkinType != "" ||
		len(p.Concerns) > 0 ||
		len(p.SurveyAnswers) > 0 ||
		len(p.SavedProducts) > 0 ||
		len(p.Routines) > 0 ||
		len(p.SearchHistory) > 0 ||
		len(p.ViewedProducts) > 0 ||
		p.Location != nil
}
