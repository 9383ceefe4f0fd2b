// Package rank implements scoring and leaderboard queries.
package rank

import (
	"context"

	"bussp-service/internal/users"
)

// Score converts a distance in meters into points: one point per 100 meters,
// truncated. Distances below 100 meters earn nothing.
func Score(distanceMeters int) int {
	return distanceMeters / 100
}

// Service contains ranking business logic.
type Service struct {
	users users.Repository
}

// NewService creates a rank service over the user repository.
func NewService(repo users.Repository) *Service {
	return &Service{users: repo}
}

// UserRank returns the user's 1-based position in the global ranking.
func (s *Service) UserRank(ctx context.Context, email string) (int, error) {
	list, err := s.users.ListByScore(ctx)
	if err != nil {
		return 0, err
	}
	for i, u := range list {
		if u.Email == email {
			return i + 1, nil
		}
	}
	return 0, users.ErrNotFound
}

// Global returns all users ordered by score descending, registration
// order breaking ties.
func (s *Service) Global(ctx context.Context) ([]users.User, error) {
	return s.users.ListByScore(ctx)
}
