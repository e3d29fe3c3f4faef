package routine

import (
	"context"
	"time"
)

// Routine is a saved skincare routine row. ID is the merge key: the
// collection never stores the same id twice.
type Routine struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TimeOfDay string    `json:"timeOfDay"`
	Steps     []string  `json:"steps"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Service defines routine collection operations.
//
// Implementations must enforce id uniqueness at the storage layer so that
// concurrent merges for the same user cannot double-insert a routine.
type Service interface {
	ListIDs(ctx context.Context, userID string) ([]string, error)
	InsertBatch(ctx context.Context, userID string, routines []Routine) error
}
