package session

import "errors"

// Storage errors
var (
	// ErrNotFound indicates the slot holds no value.
	ErrNotFound = errors.New("slot not found")

	// ErrCorruptData indicates a slot's payload could not be decoded.
	ErrCorruptData = errors.New("corrupt session data")
)

// Slot names. Each store owns exactly these slots under its session prefix.
const (
	slotProfile      = "profile"
	slotInteractions = "interactions"
)

// Storage is the local ephemeral key-value persistence the session store
// writes through. Values are JSON documents. Implementations must return
// ErrNotFound for absent keys and must not invent partial values.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
