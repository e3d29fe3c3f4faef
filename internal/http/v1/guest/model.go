package guest

import (
	"github.com/lumiskin/skincare-api/internal/platform/timeutil"
	"github.com/lumiskin/skincare-api/internal/service/routine"
	"github.com/lumiskin/skincare-api/internal/session"
)

// Location is the coarse location a guest may attach to the session.
type Location struct {
	City  string `json:"city,omitempty"  doc:"City name"        maxLength:"100"`
	State string `json:"state,omitempty" doc:"State or region"  maxLength:"100"`
	Zip   string `json:"zip,omitempty"   doc:"Postal code"      maxLength:"20"`
}

// SavedProduct is a bookmarked catalog item in the session profile.
type SavedProduct struct {
	ID       int           `json:"id"       doc:"Catalog item identifier"`
	Name     string        `json:"name"     doc:"Product name"`
	Brand    string        `json:"brand"    doc:"Brand name"`
	Category string        `json:"category" doc:"Product category"`
	SavedAt  timeutil.Time `json:"savedAt"  doc:"When the product was saved"`
}

// Routine is a saved skincare routine in the session profile.
type Routine struct {
	ID        string        `json:"id"        doc:"Routine identifier"`
	Name      string        `json:"name"      doc:"Routine name"`
	TimeOfDay string        `json:"timeOfDay" doc:"When the routine runs"`
	Steps     []string      `json:"steps"     doc:"Ordered product steps"`
	CreatedAt timeutil.Time `json:"createdAt" doc:"When the routine was created"`
	UpdatedAt timeutil.Time `json:"updatedAt" doc:"When the routine was last updated"`
}

// Profile is the guest session profile returned over HTTP.
type Profile struct {
	SkinType       string         `json:"skinType,omitempty"       doc:"Skin type"`
	Concerns       []string       `json:"concerns,omitempty"       doc:"Skin concerns"`
	SurveyAnswers  map[string]any `json:"surveyAnswers,omitempty"  doc:"Skin quiz answers"`
	SavedProducts  []SavedProduct `json:"savedProducts,omitempty"  doc:"Bookmarked products"`
	Routines       []Routine      `json:"routines,omitempty"       doc:"Saved routines"`
	SearchHistory  []string       `json:"searchHistory,omitempty"  doc:"Recent searches, most recent first"`
	ViewedProducts []string       `json:"viewedProducts,omitempty" doc:"Recently viewed products, most recent first"`
	Location       *Location      `json:"location,omitempty"       doc:"Coarse location"`
	Preferences    map[string]any `json:"preferences,omitempty"    doc:"Ranking preferences"`
	StartedAt      timeutil.Time  `json:"startedAt"                doc:"When the session profile was created"`
}

func toProfile(p session.Profile) Profile {
	out := Profile{
		SkinType:       p.SkinType,
		Concerns:       p.Concerns,
		SurveyAnswers:  p.SurveyAnswers,
		SearchHistory:  p.SearchHistory,
		ViewedProducts: p.ViewedProducts,
		Preferences:    p.Preferences,
		StartedAt:      timeutil.NewTime(p.StartedAt),
	}
	if p.Location != nil {
		out.Location = &Location{City: p.Location.City, State: p.Location.State, Zip: p.Location.Zip}
	}
	for _, sp := range p.SavedProducts {
		out.SavedProducts = append(out.SavedProducts, SavedProduct{
			ID:       sp.ID,
			Name:     sp.Name,
			Brand:    sp.Brand,
			Category: sp.Category,
			SavedAt:  timeutil.NewTime(sp.SavedAt),
		})
	}
	for _, r := range p.Routines {
		out.Routines = append(out.Routines, toRoutine(r))
	}
	return out
}

func toRoutine(r routine.Routine) Routine {
	return Routine{
		ID:        r.ID,
		Name:      r.Name,
		TimeOfDay: r.TimeOfDay,
		Steps:     r.Steps,
		CreatedAt: timeutil.NewTime(r.CreatedAt),
		UpdatedAt: timeutil.NewTime(r.UpdatedAt),
	}
}
