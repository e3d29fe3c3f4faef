package account

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMockGetMissing(t *testing.T) {
	svc := NewMockService()

	_, err := svc.Get(context.Background(), "absent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMockUpdateCreatesAndMerges(t *testing.T) {
	svc := NewMockService()
	ctx := context.Background()

	if err := svc.Update(ctx, "u-1", map[string]any{
		FieldSkinType:  "oily",
		FieldUpdatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := svc.Update(ctx, "u-1", map[string]any{
		FieldPreferences: map[string]any{PrefBudgetRange: "mid"},
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	p, err := svc.Get(ctx, "u-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.SkinType != "oily" {
		t.Errorf("expected skin type kept across updates, got %q", p.SkinType)
	}
	if p.Preferences[PrefBudgetRange] != "mid" {
		t.Errorf("expected preference merged, got %v", p.Preferences)
	}
	if len(svc.Updates) != 2 {
		t.Errorf("expected 2 recorded payloads, got %d", len(svc.Updates))
	}
}

func TestMockGetReturnsCopy(t *testing.T) {
	svc := NewMockService()
	svc.Seed(&Profile{ID: "u-2", SkinType: "dry"})

	p, err := svc.Get(context.Background(), "u-2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	p.SkinType = "mutated"

	if got := svc.Stored("u-2").SkinType; got != "dry" {
		t.Errorf("stored profile mutated through the returned copy: %q", got)
	}
}
