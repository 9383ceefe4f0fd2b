package users

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"bussp-service/internal/events"
	"bussp-service/pkg/jwt"
	"bussp-service/pkg/kafka"
)

// Service contains user business logic.
type Service struct {
	repo  Repository
	kafka *kafka.Client
}

// NewService creates a user service. The Kafka client may be nil, in which
// case registration events are not published.
func NewService(repo Repository, k *kafka.Client) *Service {
	return &Service{repo: repo, kafka: k}
}

// Register creates a new account and returns a JWT.
// Fails with ErrEmailTaken if the email is already registered; the existing
// account is never touched.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	_, err := s.repo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{Name: req.Name, Email: req.Email, Score: 0, PasswordHash: string(hash)}
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(u.Email, u.Name)
	if err != nil {
		return nil, err
	}

	if s.kafka != nil {
		go func() {
			ev := events.UserRegisteredEvent{
				Email:        u.Email,
				Name:         u.Name,
				RegisteredAt: u.CreatedAt.Format(time.RFC3339),
			}
			if err := s.kafka.Publish(context.Background(), kafka.TopicUserRegistered, u.Email, ev); err != nil {
				log.Printf("[users] failed to publish user.registered: %v", err)
			}
		}()
	}

	return &AuthResponse{Token: token, User: u}, nil
}

// Login authenticates a user and returns a JWT.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.repo.GetByEmail(ctx, req.Email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.Generate(u.Email, u.Name)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: u}, nil
}

// GetByEmail fetches a single user.
func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, email)
}
