package sync

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/lumiskin/skincare-api/internal/platform/auth"
	"github.com/lumiskin/skincare-api/internal/platform/logging"
	"github.com/lumiskin/skincare-api/internal/reconcile"
	"github.com/lumiskin/skincare-api/internal/service/account"
	"github.com/lumiskin/skincare-api/internal/session"
)

// Input identifies the guest session to fold into the caller's account.
type Input struct {
	SessionID string `header:"X-Session-Id" doc:"Guest session to merge" required:"true"`
}

// Output reports the merge outcome field by field.
type Output struct {
	Body reconcile.Result
}

// Register wires the account sync route into the provided API router.
func Register(api huma.API, engine *reconcile.Engine, sessions *session.Manager, accounts account.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "sync-guest-session",
		Method:      http.MethodPost,
		Path:        "/v1/account/sync",
		Summary:     "Merge the guest session into the account profile",
		Description: "One-shot reconciliation after sign-in. Account data always wins conflicts; the guest session is destroyed only after the profile write succeeds.",
		Tags:        []string{"Account"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *Input) (*Output, error) {
		user := auth.UserFromContext(ctx)

		var existing *account.Profile
		stored, err := accounts.Get(ctx, user.UID)
		switch {
		case err == nil:
			existing = stored
		case errors.Is(err, account.ErrNotFound):
			// first sign-in; the merge creates the profile
		default:
			logging.LogError(ctx, "failed to load account profile for sync", err,
				zap.String("user_id", user.UID))
			return nil, huma.Error500InternalServerError("failed to load profile")
		}

		result := engine.MergeGuestData(ctx, user.UID, existing, sessions.Store(input.SessionID))
		logging.LogInfo(ctx, "guest session sync completed",
			zap.String("user_id", user.UID),
			zap.Bool("success", result.Success),
			zap.Int("merged_fields", len(result.MergedFields)),
			zap.Int("errors", len(result.Errors)))

		return &Output{Body: result}, nil
	})
}
