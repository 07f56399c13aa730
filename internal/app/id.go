package app

import "github.com/google/uuid"

// generateID returns a UUIDv7, so activity IDs sort by creation time.
func generateID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
