// Package reconcile merges a guest session's ephemeral profile into the
// durable account profile exactly once, on authentication. Every policy is
// naturally idempotent (fill-if-empty, set union, id-based dedup), so a
// failed merge is safe to re-run on the next login.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	applog "github.com/lumiskin/skincare-api/internal/platform/logging"
	"github.com/lumiskin/skincare-api/internal/service/account"
	"github.com/lumiskin/skincare-api/internal/service/routine"
	"github.com/lumiskin/skincare-api/internal/session"
)

// Caps applied when prepending guest history onto account history.
const (
	searchHistoryCap  = 20
	viewedProductsCap = 50
)

// defaultRoutineTimeout bounds the routines round trip. A timeout there is
// recorded as a non-terminal error; field merging continues.
const defaultRoutineTimeout = 5 * time.Second

// Result reports one reconciliation attempt. It is produced per call and
// never persisted. Errors may be non-empty even when Success is true, e.g.
// the routines sub-step failed but the profile fields merged.
type Result struct {
	Success       bool     `json:"success"`
	MergedFields  []string `json:"mergedFields"`
	SkippedFields []string `json:"skippedFields"`
	Errors        []string `json:"errors"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithRoutineTimeout overrides the routines round-trip timeout.
func WithRoutineTimeout(d time.Duration) Option {
	return func(e *Engine) { e.routineTimeout = d }
}

// Engine orchestrates the merge across the account profile service and the
// routine collection service.
type Engine struct {
	accounts       account.Service
	routines       routine.Service
	routineTimeout time.Duration
}

// New creates a reconciliation engine.
func New(accounts account.Service, routines routine.Service, opts ...Option) *Engine {
	e := &Engine{
		accounts:       accounts,
		routines:       routines,
		routineTimeout: defaultRoutineTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MergeGuestData folds the session's ephemeral profile into the account
// profile using the per-field policy table, then clears the session — but
// only after the profile write committed. existing may be nil for a user
// with no profile document yet.
//
// External-service failures never propagate: they are converted into
// Result.Errors. A routines failure is non-terminal; a profile-write
// failure is terminal for this attempt and leaves the session intact.
func (e *Engine) MergeGuestData(ctx context.Context, userID string, existing *account.Profile, sess *session.Store) Result {
	guest, err := sess.LoadProfile()
	if err != nil {
		// The caller chose a merge; a corrupt slot degrades to "nothing
		// to merge" rather than blocking the login.
		applog.LogWarn(ctx, "guest profile unreadable, treating as empty", zap.Error(err))
	}

	if !guest.HasMergeableData() {
		return Result{Success: true, SkippedFields: []string{"all (no guest data)"}}
	}

	if existing == nil {
		existing = &account.Profile{ID: userID}
	}
	prefs := existing.Preferences
	if prefs == nil {
		prefs = map[string]any{}
	}

	var res Result
	payload := map[string]any{}
	payloadPrefs := map[string]any{}

	// skin type: fill-if-empty
	if guest.SkinType != "" {
		if existing.SkinType == "" {
			payload[account.FieldSkinType] = guest.SkinType
			res.MergedFields = append(res.MergedFields, "skin_type")
		} else {
			res.SkippedFields = append(res.SkippedFields, "skin_type (server has value)")
		}
	}

	// concerns: union, write only if the set grows
	if len(guest.Concerns) > 0 {
		union := unionStrings(existing.Concerns, guest.Concerns)
		if len(union) > len(existing.Concerns) {
			payload[account.FieldConcerns] = union
			res.MergedFields = append(res.MergedFields, "concerns")
		} else {
			res.SkippedFields = append(res.SkippedFields, "concerns (no new)")
		}
	}

	// saved products: union by id, write only if it grows
	if len(guest.SavedProducts) > 0 {
		merged, added := mergeSavedProducts(prefs[account.PrefSavedProducts], guest.SavedProducts)
		if added > 0 {
			payloadPrefs[account.PrefSavedProducts] = merged
			res.MergedFields = append(res.MergedFields, "saved_products")
		} else {
			res.SkippedFields = append(res.SkippedFields, "saved_products (no new)")
		}
	}

	// routines: separate round trip, before the profile write; failures
	// here are recorded and field merging continues.
	if len(guest.Routines) > 0 {
		e.mergeRoutines(ctx, userID, guest.Routines, &res)
	}

	// search history: guest entries first, de-duplicated, capped
	if len(guest.SearchHistory) > 0 {
		payloadPrefs[account.PrefSearchHistory] = prependHistory(
			guest.SearchHistory, stringsFromAny(prefs[account.PrefSearchHistory]), searchHistoryCap)
		res.MergedFields = append(res.MergedFields, "search_history")
	}

	// viewed products: guest entries first, de-duplicated, capped
	if len(guest.ViewedProducts) > 0 {
		payloadPrefs[account.PrefViewedProducts] = prependHistory(
			guest.ViewedProducts, stringsFromAny(prefs[account.PrefViewedProducts]), viewedProductsCap)
		res.MergedFields = append(res.MergedFields, "viewed_products")
	}

	// survey answers: fill-if-empty
	if len(guest.SurveyAnswers) > 0 {
		if isAbsent(prefs[account.PrefSurveyAnswers]) {
			payloadPrefs[account.PrefSurveyAnswers] = guest.SurveyAnswers
			res.MergedFields = append(res.MergedFields, "survey_answers")
		} else {
			res.SkippedFields = append(res.SkippedFields, "survey_answers (server has value)")
		}
	}

	// location: fill-if-empty
	if guest.Location != nil {
		if isAbsent(prefs[account.PrefLocation]) {
			payloadPrefs[account.PrefLocation] = map[string]any{
				"city":  guest.Location.City,
				"state": guest.Location.State,
				"zip":   guest.Location.Zip,
			}
			res.MergedFields = append(res.MergedFields, "location")
		} else {
			res.SkippedFields = append(res.SkippedFields, "location (server has value)")
		}
	}

	if len(payloadPrefs) > 0 {
		payload[account.FieldPreferences] = payloadPrefs
	}

	// Nothing changed on the profile document: success without a write.
	// The session is not cleared here; clearing happens strictly after a
	// successful profile write.
	if len(payload) == 0 {
		res.Success = true
		applog.LogInfo(ctx, "guest merge produced no profile changes",
			zap.String("user_id", userID),
			zap.Strings("skipped", res.SkippedFields))
		return res
	}

	payload[account.FieldUpdatedAt] = time.Now().UTC()
	if err := e.accounts.Update(ctx, userID, payload); err != nil {
		res.Success = false
		res.Errors = append(res.Errors, fmt.Sprintf("profile update: %v", err))
		applog.LogAuditEvent(ctx, "merge", userID, "guest_data", userID, "failure",
			map[string]any{"error": err.Error()})
		return res
	}

	res.Success = true
	e.clearSession(ctx, userID, sess, &res)

	applog.LogAuditEvent(ctx, "merge", userID, "guest_data", userID, "success",
		map[string]any{"merged": res.MergedFields, "skipped": res.SkippedFields, "errors": len(res.Errors)})
	return res
}

// mergeRoutines diffs the guest routines against the stored ids and inserts
// only the unseen ones, bounded by the routine timeout.
func (e *Engine) mergeRoutines(ctx context.Context, userID string, guest []routine.Routine, res *Result) {
	rctx, cancel := context.WithTimeout(ctx, e.routineTimeout)
	defer cancel()

	ids, err := e.routines.ListIDs(rctx, userID)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("routines: list ids: %v", err))
		return
	}

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}

	var fresh []routine.Routine
	for _, r := range guest {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		fresh = append(fresh, r)
	}

	if len(fresh) == 0 {
		res.SkippedFields = append(res.SkippedFields, "routines (none new)")
		return
	}

	if err := e.routines.InsertBatch(rctx, userID, fresh); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("routines: insert: %v", err))
		return
	}
	res.MergedFields = append(res.MergedFields, fmt.Sprintf("routines (%d added)", len(fresh)))
}

// clearSession clears the guest data after a committed merge. The account
// write already succeeded, so a clear failure is recorded but does not flip
// the overall outcome; the next login re-enters the no-guest-data fast path
// or re-runs the idempotent policies.
func (e *Engine) clearSession(ctx context.Context, userID string, sess *session.Store, res *Result) {
	if err := sess.Clear(); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("clear session: %v", err))
		applog.LogWarn(ctx, "failed to clear guest session after merge",
			zap.String("user_id", userID), zap.Error(err))
	}
}

// unionStrings keeps base order and appends unseen extras in their order.
func unionStrings(base, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]struct{}, len(base)+len(extra))
	for _, v := range base {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	for _, v := range extra {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// prependHistory puts guest entries before existing ones, de-duplicates
// keeping the first occurrence, and caps the result.
func prependHistory(guest, existing []string, limit int) []string {
	merged := unionStrings(guest, existing)
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// mergeSavedProducts unions the stored raw list with guest products by id.
// Stored values arrive as loosely typed documents, so ids are extracted
// tolerantly; unparseable rows are kept as-is and never dropped.
func mergeSavedProducts(existingRaw any, guest []session.SavedProduct) ([]any, int) {
	existing, _ := existingRaw.([]any)

	seen := make(map[int64]struct{}, len(existing))
	out := make([]any, 0, len(existing)+len(guest))
	for _, row := range existing {
		out = append(out, row)
		if m, ok := row.(map[string]any); ok {
			if id, ok := numericID(m["id"]); ok {
				seen[id] = struct{}{}
			}
		}
	}

	added := 0
	for _, sp := range guest {
		if _, dup := seen[int64(sp.ID)]; dup {
			continue
		}
		seen[int64(sp.ID)] = struct{}{}
		out = append(out, map[string]any{
			"id":       sp.ID,
			"name":     sp.Name,
			"brand":    sp.Brand,
			"category": sp.Category,
			"saved_at": sp.SavedAt,
		})
		added++
	}
	return out, added
}

func numericID(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

func stringsFromAny(v any) []string {
	switch vals := v.(type) {
	case []string:
		return vals
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	switch val := v.(type) {
	case map[string]any:
		return len(val) == 0
	case string:
		return val == ""
	default:
		return false
	}
}
