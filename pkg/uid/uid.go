// Package uid generates unique identifiers for receipts and sessions.
package uid

import "github.com/google/uuid"

// New returns a new random identifier.
func New() string {
	return uuid.NewString()
}

// Valid reports whether id is a well-formed identifier.
func Valid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
