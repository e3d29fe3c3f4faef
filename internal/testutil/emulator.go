// Package testutil gates integration tests on the local Firestore emulator.
package testutil

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"
)

const (
	// FirestoreEmulatorHost is where `firebase emulators:start` listens
	// with the repo's firebase.json.
	FirestoreEmulatorHost = "127.0.0.1:7130"

	// ProjectID is the demo project used against the emulator.
	ProjectID = "demo-test-project"
)

// SkipIfFirestoreUnavailable skips the test when the Firestore emulator is
// not reachable, so the suite stays green without local emulators.
func SkipIfFirestoreUnavailable(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", FirestoreEmulatorHost)
	if err != nil {
		t.Skip("Firestore emulator not available")
	}
	_ = conn.Close()
}

// SetupEmulator points the Firestore client at the emulator for the
// duration of the test.
func SetupEmulator(t *testing.T) {
	t.Helper()
	t.Setenv("FIRESTORE_EMULATOR_HOST", FirestoreEmulatorHost)
}

// ClearFirestore deletes every document in the emulator so tests start
// from a blank database.
func ClearFirestore(t *testing.T) {
	t.Helper()
	url := fmt.Sprintf("http://%s/emulator/v1/projects/%s/databases/(default)/documents",
		FirestoreEmulatorHost, ProjectID)
	req, err := http.NewRequestWithContext(context.Background(), http.MethodDelete, url, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("failed to clear Firestore: %v", err)
	}
	_ = resp.Body.Close()
}
