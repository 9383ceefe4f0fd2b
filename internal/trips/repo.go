package trips

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the persistence port for trips.
type Repository interface {
	Save(ctx context.Context, t *Trip) error
	// ListByEmail returns a user's trips ordered by start time, oldest first.
	ListByEmail(ctx context.Context, email string) ([]Trip, error)
}

// PostgresRepository implements Repository on a pgx pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a trip repository backed by the given pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, t *Trip) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO trips (id,email,bus_line,direction,distance,score,started_at,ended_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING created_at`,
		t.ID, t.Email, t.BusLine, t.Direction, t.Distance, t.Score, t.StartedAt, t.EndedAt).
		Scan(&t.CreatedAt)
	return err
}

func (r *PostgresRepository) ListByEmail(ctx context.Context, email string) ([]Trip, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id,email,bus_line,direction,distance,score,started_at,ended_at,created_at
		 FROM trips WHERE email=$1 ORDER BY started_at ASC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Trip
	for rows.Next() {
		var t Trip
		if err := rows.Scan(&t.ID, &t.Email, &t.BusLine, &t.Direction, &t.Distance,
			&t.Score, &t.StartedAt, &t.EndedAt, &t.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
