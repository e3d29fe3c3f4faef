package account

import (
	"context"
	"errors"
	"time"
)

// Service errors
var (
	ErrNotFound = errors.New("account profile not found")
)

// Profile is the durable account profile tied to an authenticated identity.
// Preferences is a nested container holding saved products, search history,
// viewed products, survey answers and location, so new per-user data does
// not require schema changes on the document.
type Profile struct {
	ID          string
	SkinType    string
	Concerns    []string
	Preferences map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Recognized top-level field names for Update payloads. The "preferences"
// value is a map merged key-wise into the stored container.
const (
	FieldSkinType    = "skin_type"
	FieldConcerns    = "concerns"
	FieldPreferences = "preferences"
	FieldUpdatedAt   = "updated_at"
)

// Preference container keys nested under FieldPreferences.
const (
	PrefSavedProducts  = "saved_products"
	PrefSearchHistory  = "search_history"
	PrefViewedProducts = "viewed_products"
	PrefSurveyAnswers  = "survey_answers"
	PrefLocation       = "location"
	PrefBudgetRange    = "budget_range"
	PrefCrueltyFree    = "cruelty_free"
	PrefVegan          = "vegan"
	PrefFragranceFree  = "fragrance_free"
)

// Service defines account profile operations.
//
// Update is a partial write: only the fields present in the payload are
// touched, nested preference keys are merged rather than replaced, and the
// document is created if it does not exist yet.
type Service interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	Update(ctx context.Context, userID string, fields map[string]any) error
}
