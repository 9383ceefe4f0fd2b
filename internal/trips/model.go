package trips

import "time"

// Trip represents a logged bus journey. Immutable once created.
type Trip struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	BusLine   string    `json:"bus_line"`
	Direction int       `json:"direction"`
	Distance  int       `json:"distance"` // meters
	Score     int       `json:"score"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateRequest is the body for POST /trips/.
// Email may be omitted, in which case the authenticated user is used.
type CreateRequest struct {
	Email     string    `json:"email,omitempty"`
	BusLine   string    `json:"bus_line"`
	Direction int       `json:"direction"`
	Distance  int       `json:"distance"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}
