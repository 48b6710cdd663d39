// Package util provides utility functions for MediDonate.
package util

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID generates a new UUIDv7 identifier. UUIDv7 values sort by creation
// time, which keeps journal rows and request ids in order.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// The random source failed; a v4 id is still unique.
		return uuid.New().String()
	}
	return id.String()
}

// ParseID validates and parses a UUID string.
func ParseID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid ID format: %w", err)
	}
	return id.String(), nil
}

// IsValidID checks if a string is a valid UUID format.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
