package events

// UserRegisteredEvent is published to user.registered.
type UserRegisteredEvent struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	RegisteredAt string `json:"registered_at"`
}

// TripCompletedEvent is published to trip.completed.
type TripCompletedEvent struct {
	TripID    string `json:"trip_id"`
	Email     string `json:"email"`
	BusLine   string `json:"bus_line"`
	Direction int    `json:"direction"`
	Distance  int    `json:"distance"`
	Score     int    `json:"score"`
	EndedAt   string `json:"ended_at"`
}
