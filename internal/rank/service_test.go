package rank

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bussp-service/internal/users"
)

type fakeUserRepo struct {
	ordered []users.User
}

func (f *fakeUserRepo) Save(ctx context.Context, u *users.User) error { return nil }

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	for i := range f.ordered {
		if f.ordered[i].Email == email {
			return &f.ordered[i], nil
		}
	}
	return nil, users.ErrNotFound
}

func (f *fakeUserRepo) ListByScore(ctx context.Context) ([]users.User, error) {
	return f.ordered, nil
}

func (f *fakeUserRepo) AddScore(ctx context.Context, email string, delta int) error { return nil }

func TestScore(t *testing.T) {
	cases := []struct {
		distance int
		want     int
	}{
		{0, 0},
		{50, 0},
		{99, 0},
		{100, 1},
		{999, 9},
		{1000, 10},
		{12345, 123},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Score(tc.distance), "distance %d", tc.distance)
	}
}

func TestUserRank(t *testing.T) {
	now := time.Now()
	repo := &fakeUserRepo{ordered: []users.User{
		{Email: "first@example.com", Score: 300, CreatedAt: now},
		{Email: "second@example.com", Score: 200, CreatedAt: now},
		{Email: "third@example.com", Score: 100, CreatedAt: now},
	}}
	svc := NewService(repo)

	pos, err := svc.UserRank(context.Background(), "first@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, pos)

	pos, err = svc.UserRank(context.Background(), "third@example.com")
	require.NoError(t, err)
	assert.Equal(t, 3, pos)
}

func TestUserRankNotFound(t *testing.T) {
	svc := NewService(&fakeUserRepo{})

	_, err := svc.UserRank(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func TestGlobalPreservesRepositoryOrder(t *testing.T) {
	// Ties are already broken by the repository (registration order);
	// the service must not reorder.
	earlier := time.Now().Add(-time.Hour)
	later := time.Now()
	repo := &fakeUserRepo{ordered: []users.User{
		{Email: "top@example.com", Score: 500, CreatedAt: later},
		{Email: "old@example.com", Score: 100, CreatedAt: earlier},
		{Email: "new@example.com", Score: 100, CreatedAt: later},
	}}
	svc := NewService(repo)

	list, err := svc.Global(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "top@example.com", list[0].Email)
	assert.Equal(t, "old@example.com", list[1].Email)
	assert.Equal(t, "new@example.com", list[2].Email)
}
