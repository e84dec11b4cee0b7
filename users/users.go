// Package users holds the directory's only persisted entity.
package users

import "time"

// UnknownName is stored when the identity provider supplies no display name.
const UnknownName = "Unknown"

type User struct {
	ID        int64     `json:"id,omitempty"`         // Surrogate key assigned by the store
	Name      string    `json:"name,omitempty"`       // Display name as claimed at first visit
	Email     string    `json:"email,omitempty"`      // Natural deduplication key, unique per row
	CreatedAt time.Time `json:"created_at,omitempty"` // First visit timestamp
}

// DisplayName normalizes an identity-provider name claim for storage.
func DisplayName(name string) string {
	if name == "" {
		return UnknownName
	}
	return name
}
