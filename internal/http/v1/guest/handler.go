package guest

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lumiskin/skincare-api/internal/platform/logging"
	"github.com/lumiskin/skincare-api/internal/service/account"
	"github.com/lumiskin/skincare-api/internal/service/routine"
	"github.com/lumiskin/skincare-api/internal/session"
)

// Register wires the guest session routes into the provided API router.
// Every route is keyed by the X-Session-Id header; no authentication is
// required because the session holds only ephemeral browsing state.
func Register(api huma.API, sessions *session.Manager) {
	huma.Register(api, huma.Operation{
		OperationID: "get-session-profile",
		Method:      http.MethodGet,
		Path:        "/v1/session/profile",
		Summary:     "Get the guest session profile",
		Description: "Returns the current snapshot. A stale or unknown session yields a fresh, empty profile.",
		Tags:        []string{"Session"},
	}, func(_ context.Context, input *ProfileGetInput) (*ProfileOutput, error) {
		return &ProfileOutput{Body: toProfile(sessions.Store(input.SessionID).Profile())}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-session-profile",
		Method:      http.MethodPatch,
		Path:        "/v1/session/profile",
		Summary:     "Update guest profile fields",
		Description: "Applies only the fields present in the request. Concerns are added, never replaced.",
		Tags:        []string{"Session"},
	}, func(ctx context.Context, input *ProfileUpdateInput) (*ProfileOutput, error) {
		store := sessions.Store(input.SessionID)

		if input.Body.SkinType != nil {
			if err := store.SetSkinType(*input.Body.SkinType); err != nil {
				return nil, storeError(ctx, "set skin type", err)
			}
		}
		if len(input.Body.Concerns) > 0 {
			if err := store.AddConcerns(input.Body.Concerns...); err != nil {
				return nil, storeError(ctx, "add concerns", err)
			}
		}
		if len(input.Body.SurveyAnswers) > 0 {
			if err := store.SetSurveyAnswers(input.Body.SurveyAnswers); err != nil {
				return nil, storeError(ctx, "set survey answers", err)
			}
		}
		if input.Body.Location != nil {
			loc := session.Location{
				City:  input.Body.Location.City,
				State: input.Body.Location.State,
				Zip:   input.Body.Location.Zip,
			}
			if err := store.SetLocation(loc); err != nil {
				return nil, storeError(ctx, "set location", err)
			}
		}
		for key, value := range input.Body.Preferences {
			if !allowedPreference(key) {
				return nil, huma.Error422UnprocessableEntity("unknown preference key: " + key)
			}
			if err := store.SetPreference(key, value); err != nil {
				return nil, storeError(ctx, "set preference", err)
			}
		}

		return &ProfileOutput{Body: toProfile(store.Profile())}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "save-session-product",
		Method:      http.MethodPost,
		Path:        "/v1/session/saved-products",
		Summary:     "Bookmark a product in the guest session",
		Description: "Saving an already-saved product id is a no-op.",
		Tags:        []string{"Session"},
	}, func(ctx context.Context, input *SaveProductInput) (*ProfileOutput, error) {
		store := sessions.Store(input.SessionID)
		err := store.SaveProduct(session.SavedProduct{
			ID:       input.Body.ID,
			Name:     input.Body.Name,
			Brand:    input.Body.Brand,
			Category: input.Body.Category,
		})
		if err != nil {
			return nil, storeError(ctx, "save product", err)
		}
		return &ProfileOutput{Body: toProfile(store.Profile())}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "add-session-routine",
		Method:      http.MethodPost,
		Path:        "/v1/session/routines",
		Summary:     "Save a routine in the guest session",
		Description: "An id is generated when the request omits one. Adding an already-present id is a no-op.",
		Tags:        []string{"Session"},
	}, func(ctx context.Context, input *AddRoutineInput) (*RoutineOutput, error) {
		now := time.Now().UTC()
		r := routine.Routine{
			ID:        input.Body.ID,
			Name:      input.Body.Name,
			TimeOfDay: input.Body.TimeOfDay,
			Steps:     input.Body.Steps,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if r.ID == "" {
			r.ID = uuid.NewString()
		}

		if err := sessions.Store(input.SessionID).AddRoutine(r); err != nil {
			return nil, storeError(ctx, "add routine", err)
		}
		return &RoutineOutput{Body: toRoutine(r)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "record-session-search",
		Method:      http.MethodPost,
		Path:        "/v1/session/searches",
		Summary:     "Record a search query",
		Tags:        []string{"Session"},
	}, func(ctx context.Context, input *RecordSearchInput) (*ProfileOutput, error) {
		store := sessions.Store(input.SessionID)
		if err := store.RecordSearch(input.Body.Query); err != nil {
			return nil, storeError(ctx, "record search", err)
		}
		return &ProfileOutput{Body: toProfile(store.Profile())}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "record-session-view",
		Method:      http.MethodPost,
		Path:        "/v1/session/views",
		Summary:     "Record a viewed product",
		Tags:        []string{"Session"},
	}, func(ctx context.Context, input *RecordViewInput) (*ProfileOutput, error) {
		store := sessions.Store(input.SessionID)
		if err := store.RecordView(input.Body.ProductID); err != nil {
			return nil, storeError(ctx, "record view", err)
		}
		return &ProfileOutput{Body: toProfile(store.Profile())}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "record-session-interaction",
		Method:      http.MethodPost,
		Path:        "/v1/session/interactions",
		Summary:       "Append to the session interaction log",
		Description:   "The log is capped; the oldest entry drops once the cap is reached.",
		Tags:          []string{"Session"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *RecordInteractionInput) (*struct{}, error) {
		err := sessions.Store(input.SessionID).RecordInteraction(input.Body.Kind, input.Body.Target, input.Body.Data)
		if err != nil {
			return nil, storeError(ctx, "record interaction", err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-session-behavior",
		Method:      http.MethodGet,
		Path:        "/v1/session/behavior",
		Summary:     "Get behavior patterns derived from the interaction log",
		Tags:        []string{"Session"},
	}, func(_ context.Context, input *BehaviorInput) (*BehaviorOutput, error) {
		patterns := sessions.Store(input.SessionID).BehaviorPatterns()
		return &BehaviorOutput{
			Body: BehaviorData{
				EngagementLevel:      patterns.EngagementLevel,
				PrimaryInterests:     patterns.PrimaryInterests,
				PreferredFeatures:    patterns.PreferredFeatures,
				SessionDurationSec:   patterns.SessionDuration.Seconds(),
				InteractionFrequency: patterns.InteractionFrequency,
			},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "clear-session",
		Method:        http.MethodDelete,
		Path:          "/v1/session",
		Summary:       "Destroy the guest session",
		Description:   "Removes the profile and the interaction log. Clearing an unknown session is a no-op.",
		Tags:          []string{"Session"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *ClearInput) (*struct{}, error) {
		if err := sessions.Store(input.SessionID).Clear(); err != nil {
			return nil, storeError(ctx, "clear session", err)
		}
		return nil, nil
	})
}

func allowedPreference(key string) bool {
	switch key {
	case account.PrefBudgetRange, account.PrefCrueltyFree, account.PrefVegan, account.PrefFragranceFree:
		return true
	}
	return false
}

func storeError(ctx context.Context, op string, err error) error {
	logging.LogError(ctx, "session store operation failed", err, zap.String("operation", op))
	return huma.Error500InternalServerError("session storage unavailable")
}
