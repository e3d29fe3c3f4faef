package guest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	applog "github.com/lumiskin/skincare-api/internal/platform/logging"
	appmiddleware "github.com/lumiskin/skincare-api/internal/platform/middleware"
	"github.com/lumiskin/skincare-api/internal/session"
)

func newTestRouter(t *testing.T) (chi.Router, *session.Manager) {
	t.Helper()
	sessions := session.NewManager(session.NewMemoryStorage())

	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		chimiddleware.Recoverer,
	)
	api := humachi.New(router, huma.DefaultConfig("GuestTest", "test"))
	Register(api, sessions)
	return router, sessions
}

func doJSON(t *testing.T, router chi.Router, method, path, sessionID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.Header.Set("X-Session-Id", sessionID)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestGetProfileFreshSession(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodGet, "/v1/session/profile", "sess-1", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var p Profile
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if p.SkinType != "" || len(p.Concerns) != 0 {
		t.Error("expected empty fresh profile")
	}
	if p.StartedAt.IsZero() {
		t.Error("expected start timestamp")
	}
}

func TestSessionHeaderRequired(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodGet, "/v1/session/profile", "", "")
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 without session header, got %d", resp.Code)
	}
}

func TestPatchProfileAppliesFields(t *testing.T) {
	router, sessions := newTestRouter(t)

	body := `{
		"skinType": "oily",
		"concerns": ["acne", "redness"],
		"location": {"city": "Austin", "state": "TX"},
		"preferences": {"budget_range": "mid", "cruelty_free": true}
	}`
	resp := doJSON(t, router, http.MethodPatch, "/v1/session/profile", "sess-patch", body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var p Profile
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if p.SkinType != "oily" {
		t.Errorf("expected skin type oily, got %q", p.SkinType)
	}
	if len(p.Concerns) != 2 {
		t.Errorf("expected 2 concerns, got %v", p.Concerns)
	}
	if p.Location == nil || p.Location.City != "Austin" {
		t.Errorf("expected location applied, got %+v", p.Location)
	}

	stored := sessions.Store("sess-patch").Profile()
	if stored.Preferences["budget_range"] != "mid" {
		t.Errorf("expected budget preference persisted, got %v", stored.Preferences)
	}
}

func TestPatchProfileConcernsAccumulate(t *testing.T) {
	router, _ := newTestRouter(t)

	doJSON(t, router, http.MethodPatch, "/v1/session/profile", "sess-acc", `{"concerns": ["acne"]}`)
	resp := doJSON(t, router, http.MethodPatch, "/v1/session/profile", "sess-acc", `{"concerns": ["acne", "aging"]}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var p Profile
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if len(p.Concerns) != 2 {
		t.Errorf("expected concerns deduplicated to 2, got %v", p.Concerns)
	}
}

func TestPatchProfileRejectsUnknownPreference(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPatch, "/v1/session/profile", "sess-pref", `{"preferences": {"favourite_color": "teal"}}`)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown preference, got %d", resp.Code)
	}
}

func TestSaveProductIdempotent(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"id": 101, "name": "Gel Cleanser", "brand": "ClearLab", "category": "cleanser"}`
	for i := 0; i < 2; i++ {
		resp := doJSON(t, router, http.MethodPost, "/v1/session/saved-products", "sess-save", body)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.Code)
		}
	}

	resp := doJSON(t, router, http.MethodGet, "/v1/session/profile", "sess-save", "")
	var p Profile
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if len(p.SavedProducts) != 1 {
		t.Fatalf("expected 1 saved product, got %d", len(p.SavedProducts))
	}
	if p.SavedProducts[0].SavedAt.IsZero() {
		t.Error("expected save timestamp")
	}
}

func TestAddRoutineGeneratesID(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"name": "Morning Routine", "timeOfDay": "morning", "steps": ["cleanser", "sunscreen"]}`
	resp := doJSON(t, router, http.MethodPost, "/v1/session/routines", "sess-routine", body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var r Routine
	if err := json.Unmarshal(resp.Body.Bytes(), &r); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if r.ID == "" {
		t.Error("expected a generated routine id")
	}
	if r.CreatedAt.IsZero() || r.UpdatedAt.IsZero() {
		t.Error("expected timestamps stamped")
	}
}

func TestAddRoutineKeepsProvidedID(t *testing.T) {
	router, sessions := newTestRouter(t)

	body := `{"id": "r-custom", "name": "Evening", "timeOfDay": "evening"}`
	resp := doJSON(t, router, http.MethodPost, "/v1/session/routines", "sess-routine-id", body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var r Routine
	if err := json.Unmarshal(resp.Body.Bytes(), &r); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if r.ID != "r-custom" {
		t.Errorf("expected provided id kept, got %q", r.ID)
	}

	routines := sessions.Store("sess-routine-id").Profile().Routines
	if len(routines) != 1 || routines[0].ID != "r-custom" {
		t.Errorf("expected stored routine r-custom, got %v", routines)
	}
}

func TestRecordSearchAndView(t *testing.T) {
	router, sessions := newTestRouter(t)

	if resp := doJSON(t, router, http.MethodPost, "/v1/session/searches", "sess-hist", `{"query": "retinol"}`); resp.Code != http.StatusOK {
		t.Fatalf("search: expected 200, got %d", resp.Code)
	}
	if resp := doJSON(t, router, http.MethodPost, "/v1/session/views", "sess-hist", `{"productId": "101"}`); resp.Code != http.StatusOK {
		t.Fatalf("view: expected 200, got %d", resp.Code)
	}

	p := sessions.Store("sess-hist").Profile()
	if len(p.SearchHistory) != 1 || p.SearchHistory[0] != "retinol" {
		t.Errorf("expected search recorded, got %v", p.SearchHistory)
	}
	if len(p.ViewedProducts) != 1 || p.ViewedProducts[0] != "101" {
		t.Errorf("expected view recorded, got %v", p.ViewedProducts)
	}
}

func TestRecordInteractionAndBehavior(t *testing.T) {
	router, _ := newTestRouter(t)

	for i := 0; i < 6; i++ {
		body := `{"kind": "page_view", "target": "/products/serums"}`
		resp := doJSON(t, router, http.MethodPost, "/v1/session/interactions", "sess-track", body)
		if resp.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", resp.Code)
		}
	}

	resp := doJSON(t, router, http.MethodGet, "/v1/session/behavior", "sess-track", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var data BehaviorData
	if err := json.Unmarshal(resp.Body.Bytes(), &data); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if data.EngagementLevel != session.EngagementHigh {
		t.Errorf("expected high engagement, got %s", data.EngagementLevel)
	}
	if len(data.PrimaryInterests) == 0 || data.PrimaryInterests[0] != "/products/serums" {
		t.Errorf("expected primary interest recorded, got %v", data.PrimaryInterests)
	}
	if len(data.PreferredFeatures) == 0 || data.PreferredFeatures[0] != "products" {
		t.Errorf("expected products feature, got %v", data.PreferredFeatures)
	}
}

func TestClearSession(t *testing.T) {
	router, sessions := newTestRouter(t)

	doJSON(t, router, http.MethodPatch, "/v1/session/profile", "sess-clear", `{"skinType": "dry"}`)

	resp := doJSON(t, router, http.MethodDelete, "/v1/session", "sess-clear", "")
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}

	if got := sessions.Store("sess-clear").Profile().SkinType; got != "" {
		t.Errorf("expected profile cleared, got %q", got)
	}

	// Clearing again is a no-op.
	if resp := doJSON(t, router, http.MethodDelete, "/v1/session", "sess-clear", ""); resp.Code != http.StatusNoContent {
		t.Errorf("second clear: expected 204, got %d", resp.Code)
	}
}
