package routine

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/lumiskin/skincare-api/internal/platform/logging"
)

const (
	profilesCollection = "profiles"
	routinesCollection = "routines"
)

// firestoreRoutine maps to the routine document structure.
type firestoreRoutine struct {
	Name      string    `firestore:"name"`
	TimeOfDay string    `firestore:"time_of_day"`
	Steps     []string  `firestore:"steps"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

// FirestoreStore implements Service on a per-user routines subcollection.
// The document ID is the routine ID, and inserts are create-only, so the
// storage layer rejects duplicate ids even under concurrent merges.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) collection(userID string) *firestore.CollectionRef {
	return s.client.Collection(profilesCollection).Doc(userID).Collection(routinesCollection)
}

// ListIDs returns the ids of all routines stored for the user.
func (s *FirestoreStore) ListIDs(ctx context.Context, userID string) ([]string, error) {
	refs, err := s.collection(userID).DocumentRefs(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}
	return ids, nil
}

// InsertBatch inserts the given routines as new rows. A routine whose id
// already exists is skipped, not overwritten; any other write failure is
// returned after the whole batch has been attempted.
func (s *FirestoreStore) InsertBatch(ctx context.Context, userID string, routines []Routine) error {
	if len(routines) == 0 {
		return nil
	}

	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(routines))
	for _, r := range routines {
		doc := firestoreRoutine{
			Name:      r.Name,
			TimeOfDay: r.TimeOfDay,
			Steps:     r.Steps,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		}
		job, err := bw.Create(s.collection(userID).Doc(r.ID), doc)
		if err != nil {
			bw.End()
			return err
		}
		jobs = append(jobs, job)
	}
	bw.End()

	var firstErr error
	inserted := 0
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			// Lost a race with a concurrent merge; the row exists, which
			// is the outcome the insert wanted.
			if status.Code(err) == codes.AlreadyExists {
				continue
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		inserted++
	}

	if firstErr != nil {
		applog.LogAuditEvent(ctx, "insert", userID, "routine", fmt.Sprintf("batch[%d]", len(routines)), "failure",
			map[string]any{"inserted": inserted})
		return firstErr
	}

	applog.LogAuditEvent(ctx, "insert", userID, "routine", fmt.Sprintf("batch[%d]", len(routines)), "success",
		map[string]any{"inserted": inserted})
	return nil
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
