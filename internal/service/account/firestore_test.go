package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/lumiskin/skincare-api/internal/testutil"
)

func setupFirestoreTest(t *testing.T) (*FirestoreStore, func()) {
	t.Helper()

	testutil.SkipIfFirestoreUnavailable(t)
	testutil.SetupEmulator(t)
	testutil.ClearFirestore(t)

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, testutil.ProjectID)
	if err != nil {
		t.Fatalf("failed to create Firestore client: %v", err)
	}

	store := NewFirestoreStore(client)
	cleanup := func() {
		testutil.ClearFirestore(t)
		_ = client.Close()
	}
	return store, cleanup
}

func TestFirestoreGetMissing(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()

	_, err := store.Get(context.Background(), "no-such-user")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFirestoreUpdateCreatesDocument(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()
	ctx := context.Background()

	err := store.Update(ctx, "user-new", map[string]any{
		FieldSkinType:  "oily",
		FieldConcerns:  []string{"acne"},
		FieldUpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	p, err := store.Get(ctx, "user-new")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.SkinType != "oily" {
		t.Errorf("expected skin type oily, got %q", p.SkinType)
	}
	if len(p.Concerns) != 1 || p.Concerns[0] != "acne" {
		t.Errorf("expected concerns [acne], got %v", p.Concerns)
	}
	if p.CreatedAt.IsZero() {
		t.Error("expected created_at stamped on first write")
	}
}

func TestFirestoreUpdateMergesPreferences(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.Update(ctx, "user-prefs", map[string]any{
		FieldPreferences: map[string]any{PrefBudgetRange: "mid"},
		FieldUpdatedAt:   time.Now().UTC(),
	}); err != nil {
		t.Fatalf("first update: %v", err)
	}

	if err := store.Update(ctx, "user-prefs", map[string]any{
		FieldPreferences: map[string]any{PrefCrueltyFree: true},
		FieldUpdatedAt:   time.Now().UTC(),
	}); err != nil {
		t.Fatalf("second update: %v", err)
	}

	p, err := store.Get(ctx, "user-prefs")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Preferences[PrefBudgetRange] != "mid" {
		t.Errorf("expected earlier preference kept, got %v", p.Preferences)
	}
	if p.Preferences[PrefCrueltyFree] != true {
		t.Errorf("expected later preference merged in, got %v", p.Preferences)
	}
}

func TestFirestoreUpdatePreservesCreatedAt(t *testing.T) {
	store, cleanup := setupFirestoreTest(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.Update(ctx, "user-stamp", map[string]any{
		FieldSkinType:  "dry",
		FieldUpdatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("first update: %v", err)
	}
	first, err := store.Get(ctx, "user-stamp")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if err := store.Update(ctx, "user-stamp", map[string]any{
		FieldConcerns:  []string{"dryness"},
		FieldUpdatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("second update: %v", err)
	}
	second, err := store.Get(ctx, "user-stamp")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("created_at changed across updates: %s vs %s", first.CreatedAt, second.CreatedAt)
	}
	if second.SkinType != "dry" {
		t.Errorf("expected merge to keep skin type, got %q", second.SkinType)
	}
}
