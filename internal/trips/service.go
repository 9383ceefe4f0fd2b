package trips

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"bussp-service/internal/events"
	"bussp-service/internal/rank"
	"bussp-service/internal/users"
	"bussp-service/pkg/kafka"
)

// ErrNegativeDistance is returned when a trip is logged with distance < 0.
var ErrNegativeDistance = errors.New("distance must be non-negative")

// Service contains trip business logic.
type Service struct {
	repo  Repository
	users users.Repository
	kafka *kafka.Client
}

// NewService creates a trip service. The Kafka client may be nil, in which
// case completion events are not published.
func NewService(repo Repository, userRepo users.Repository, k *kafka.Client) *Service {
	return &Service{repo: repo, users: userRepo, kafka: k}
}

// Create logs a trip for an existing user and credits its score.
//
// The trip insert and the score increment are two separate statements, not
// one transaction: if the increment fails after the insert succeeded, the
// error is returned to the caller and the trip row remains.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Trip, error) {
	if req.Distance < 0 {
		return nil, ErrNegativeDistance
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err != nil {
		return nil, err
	}

	t := &Trip{
		ID:        uuid.New().String(),
		Email:     req.Email,
		BusLine:   req.BusLine,
		Direction: req.Direction,
		Distance:  req.Distance,
		Score:     rank.Score(req.Distance),
		StartedAt: req.StartedAt,
		EndedAt:   req.EndedAt,
	}

	if err := s.repo.Save(ctx, t); err != nil {
		return nil, err
	}

	if err := s.users.AddScore(ctx, req.Email, t.Score); err != nil {
		return nil, fmt.Errorf("trip %s saved but score not credited: %w", t.ID, err)
	}

	if s.kafka != nil {
		go func() {
			ev := events.TripCompletedEvent{
				TripID:    t.ID,
				Email:     t.Email,
				BusLine:   t.BusLine,
				Direction: t.Direction,
				Distance:  t.Distance,
				Score:     t.Score,
				EndedAt:   t.EndedAt.Format(time.RFC3339),
			}
			if err := s.kafka.Publish(context.Background(), kafka.TopicTripCompleted, t.ID, ev); err != nil {
				log.Printf("[trips] failed to publish trip.completed: %v", err)
			}
		}()
	}

	return t, nil
}
