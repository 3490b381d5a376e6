// Package storage defines the Slot interface — a contract that any
// persistence backend must satisfy to hold the student collection.
//
// WHY SUCH A SMALL INTERFACE?
// ───────────────────────────
// The store keeps the whole collection in memory and only ever needs to
// read one named blob at startup and overwrite it after each change.
// Depending on nothing more than get/set of a named blob means:
//
//   - Switching backends = implement two methods, change one line in
//     main.go. Zero store changes.
//
//   - Writing tests = pass the in-memory backend. No real database
//     needed for unit tests.
package storage

import "errors"

// ErrNotFound is returned by Get when nothing has been written under the
// requested key yet. Callers compare with errors.Is.
var ErrNotFound = errors.New("storage: slot not found")

// Slot is a named key-value blob store.
type Slot interface {
	// Get returns the payload last written under key, or ErrNotFound.
	Get(key string) ([]byte, error)

	// Set overwrites the payload under key.
	Set(key string, payload []byte) error
}
