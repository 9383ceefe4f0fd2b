// Package history exposes a user's trip log as a query view.
package history

import (
	"context"
	"time"

	"bussp-service/internal/trips"
)

// Entry is one row of a user's trip history.
type Entry struct {
	Date      time.Time `json:"date"`
	Score     int       `json:"score"`
	BusLine   string    `json:"bus_line"`
	Direction int       `json:"direction"`
}

// Service turns stored trips into history entries.
type Service struct {
	trips trips.Repository
}

// NewService creates a history service over the trip repository.
func NewService(repo trips.Repository) *Service {
	return &Service{trips: repo}
}

// ForUser returns the user's trips ordered by start time. A user with no
// trips gets an empty history, not an error.
func (s *Service) ForUser(ctx context.Context, email string) ([]Entry, error) {
	list, err := s.trips.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(list))
	for _, t := range list {
		entries = append(entries, Entry{
			Date:      t.StartedAt,
			Score:     t.Score,
			BusLine:   t.BusLine,
			Direction: t.Direction,
		})
	}
	return entries, nil
}
