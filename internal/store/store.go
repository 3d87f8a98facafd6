package store

import (
	"context"
	"errors"
)

// SnapshotKey is the fixed name the whole-state document is stored under.
const SnapshotKey = "pos-state"

// ErrNoSnapshot is returned by Load when no document has been stored yet.
// Callers fall back to the default state; a corrupt document is handled
// the same way by the state decoder.
var ErrNoSnapshot = errors.New("no snapshot stored")

// SnapshotStore persists the application state as one opaque JSON
// document under SnapshotKey. Save replaces the previous document
// wholesale; there is no partial update.
type SnapshotStore interface {
	Save(ctx context.Context, doc []byte) error
	Load(ctx context.Context) ([]byte, error)
}
