package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound means no user exists for the given email.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken means a user with the given email already exists.
	ErrEmailTaken = errors.New("email already exists")
	// ErrInvalidCredentials means the email/password pair did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Repository is the persistence port for user accounts.
type Repository interface {
	Save(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	// ListByScore returns all users ordered by score descending.
	// Ties are broken by registration time, oldest first.
	ListByScore(ctx context.Context) ([]User, error)
	AddScore(ctx context.Context, email string, delta int) error
}

// PostgresRepository implements Repository on a pgx pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a user repository backed by the given pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, u *User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (email,name,password_hash,score) VALUES ($1,$2,$3,$4)
		 RETURNING created_at`,
		u.Email, u.Name, u.PasswordHash, u.Score).Scan(&u.CreatedAt)
	return err
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.QueryRow(ctx,
		`SELECT email,name,password_hash,score,created_at FROM users WHERE email=$1`,
		email).Scan(&u.Email, &u.Name, &u.PasswordHash, &u.Score, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PostgresRepository) ListByScore(ctx context.Context) ([]User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT email,name,score,created_at FROM users
		 ORDER BY score DESC, created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.Email, &u.Name, &u.Score, &u.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) AddScore(ctx context.Context, email string, delta int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET score = score + $1 WHERE email=$2`, delta, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
