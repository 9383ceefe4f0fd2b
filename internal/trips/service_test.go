package trips

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bussp-service/internal/users"
)

type fakeUserRepo struct {
	users  map[string]*users.User
	scored map[string]int // accumulated deltas per email

	addScoreErr error
}

func newFakeUserRepo(existing ...string) *fakeUserRepo {
	f := &fakeUserRepo{users: map[string]*users.User{}, scored: map[string]int{}}
	for _, email := range existing {
		f.users[email] = &users.User{Email: email, Name: "Rider", CreatedAt: time.Now()}
	}
	return f
}

func (f *fakeUserRepo) Save(ctx context.Context, u *users.User) error { return nil }

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, users.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) ListByScore(ctx context.Context) ([]users.User, error) { return nil, nil }

func (f *fakeUserRepo) AddScore(ctx context.Context, email string, delta int) error {
	if f.addScoreErr != nil {
		return f.addScoreErr
	}
	f.scored[email] += delta
	return nil
}

type fakeTripRepo struct {
	saved   []Trip
	saveErr error
}

func (f *fakeTripRepo) Save(ctx context.Context, t *Trip) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	t.CreatedAt = time.Now()
	f.saved = append(f.saved, *t)
	return nil
}

func (f *fakeTripRepo) ListByEmail(ctx context.Context, email string) ([]Trip, error) {
	var out []Trip
	for _, t := range f.saved {
		if t.Email == email {
			out = append(out, t)
		}
	}
	return out, nil
}

func request(email string, distance int) CreateRequest {
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	return CreateRequest{
		Email:     email,
		BusLine:   "8000-10",
		Direction: 1,
		Distance:  distance,
		StartedAt: start,
		EndedAt:   start.Add(40 * time.Minute),
	}
}

func TestCreateComputesScoreAndCreditsUser(t *testing.T) {
	userRepo := newFakeUserRepo("rider@example.com")
	tripRepo := &fakeTripRepo{}
	svc := NewService(tripRepo, userRepo, nil)

	trip, err := svc.Create(context.Background(), request("rider@example.com", 1000))
	require.NoError(t, err)

	assert.Equal(t, 10, trip.Score)
	assert.NotEmpty(t, trip.ID)
	require.Len(t, tripRepo.saved, 1)
	assert.Equal(t, 10, userRepo.scored["rider@example.com"])
}

func TestCreateShortTripEarnsNothing(t *testing.T) {
	userRepo := newFakeUserRepo("rider@example.com")
	tripRepo := &fakeTripRepo{}
	svc := NewService(tripRepo, userRepo, nil)

	trip, err := svc.Create(context.Background(), request("rider@example.com", 50))
	require.NoError(t, err)

	assert.Equal(t, 0, trip.Score)
	// Zero-score trips are still recorded.
	assert.Len(t, tripRepo.saved, 1)
}

func TestCreateScoreAccumulates(t *testing.T) {
	userRepo := newFakeUserRepo("rider@example.com")
	tripRepo := &fakeTripRepo{}
	svc := NewService(tripRepo, userRepo, nil)

	distances := []int{1000, 999, 250, 99}
	wantTotal := 0
	for _, d := range distances {
		trip, err := svc.Create(context.Background(), request("rider@example.com", d))
		require.NoError(t, err)
		wantTotal += trip.Score
	}

	assert.Equal(t, 10+9+2+0, wantTotal)
	assert.Equal(t, wantTotal, userRepo.scored["rider@example.com"])
	assert.Len(t, tripRepo.saved, len(distances))
}

func TestCreateUnknownUserWritesNothing(t *testing.T) {
	userRepo := newFakeUserRepo()
	tripRepo := &fakeTripRepo{}
	svc := NewService(tripRepo, userRepo, nil)

	_, err := svc.Create(context.Background(), request("ghost@example.com", 1000))
	assert.ErrorIs(t, err, users.ErrNotFound)
	assert.Empty(t, tripRepo.saved)
	assert.Empty(t, userRepo.scored)
}

func TestCreateNegativeDistanceRejected(t *testing.T) {
	userRepo := newFakeUserRepo("rider@example.com")
	tripRepo := &fakeTripRepo{}
	svc := NewService(tripRepo, userRepo, nil)

	_, err := svc.Create(context.Background(), request("rider@example.com", -1))
	assert.ErrorIs(t, err, ErrNegativeDistance)
	assert.Empty(t, tripRepo.saved)
}

func TestCreateScoreCreditFailureIsSurfaced(t *testing.T) {
	userRepo := newFakeUserRepo("rider@example.com")
	userRepo.addScoreErr = errors.New("connection reset")
	tripRepo := &fakeTripRepo{}
	svc := NewService(tripRepo, userRepo, nil)

	_, err := svc.Create(context.Background(), request("rider@example.com", 1000))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "score not credited")
	// The trip row was already written; the failure must not hide that.
	assert.Len(t, tripRepo.saved, 1)
	assert.Equal(t, 0, userRepo.scored["rider@example.com"])
}
