package domain

import "time"

// User is the fixed read view projected from the provider's attribute list.
// Nothing here is stored locally; every field comes from a single provider
// lookup and is discarded with the response.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"firstName,omitempty"`
	LastName      string    `json:"lastName,omitempty"`
	EmailVerified bool      `json:"emailVerified"`
	Enabled       bool      `json:"enabled"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	ModifiedAt    time.Time `json:"modifiedAt"`
}
