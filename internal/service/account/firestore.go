package account

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/lumiskin/skincare-api/internal/platform/logging"
)

const profilesCollection = "profiles"

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal_error"
	}
}

// firestoreProfile maps to the Firestore document structure.
type firestoreProfile struct {
	SkinType    string         `firestore:"skin_type"`
	Concerns    []string       `firestore:"concerns"`
	Preferences map[string]any `firestore:"preferences"`
	CreatedAt   time.Time      `firestore:"created_at"`
	UpdatedAt   time.Time      `firestore:"updated_at"`
}

// FirestoreStore implements Service using Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// Get retrieves a profile by user ID.
func (s *FirestoreStore) Get(ctx context.Context, userID string) (*Profile, error) {
	docRef := s.client.Collection(profilesCollection).Doc(userID)
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var fp firestoreProfile
	if err := doc.DataTo(&fp); err != nil {
		return nil, err
	}

	return &Profile{
		ID:          userID,
		SkinType:    fp.SkinType,
		Concerns:    fp.Concerns,
		Preferences: fp.Preferences,
		CreatedAt:   fp.CreatedAt,
		UpdatedAt:   fp.UpdatedAt,
	}, nil
}

// Update applies a partial payload in a transaction. Nested preference maps
// merge key-wise via Firestore's set-merge semantics; absent documents are
// created with a fresh created_at stamp.
func (s *FirestoreStore) Update(ctx context.Context, userID string, fields map[string]any) error {
	docRef := s.client.Collection(profilesCollection).Doc(userID)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		_, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) != codes.NotFound {
				return err
			}
			if _, stamped := fields["created_at"]; !stamped {
				fields = withCreatedAt(fields)
			}
		}
		return tx.Set(docRef, fields, firestore.MergeAll)
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "update", userID, "account_profile", userID, "failure",
			map[string]any{"error": categorizeError(err)})
		return err
	}

	applog.LogAuditEvent(ctx, "update", userID, "account_profile", userID, "success",
		map[string]any{"fields": fieldNames(fields)})
	return nil
}

func withCreatedAt(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["created_at"] = time.Now().UTC()
	return out
}

func fieldNames(fields map[string]any) []string {
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	return names
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
