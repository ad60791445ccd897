package directory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Pool is the subset of pgxpool.Pool the store needs, satisfiable by pgxmock.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS doctors (
	id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	surname     TEXT NOT NULL,
	surname_key TEXT NOT NULL UNIQUE,
	full_name   TEXT,
	specialty   TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_doctors_surname_key ON doctors(surname_key);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) AddDoctor(ctx context.Context, surname, fullName, specialty string) (*Doctor, error) {
	if strings.TrimSpace(surname) == "" {
		return nil, eris.New("postgres: surname is required")
	}
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO doctors (id, surname, surname_key, full_name, specialty, created_at) VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (surname_key) DO UPDATE SET surname = EXCLUDED.surname, full_name = EXCLUDED.full_name, specialty = EXCLUDED.specialty`,
		id, surname, strings.ToLower(surname), nullable(fullName), nullable(specialty), now,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert doctor %s", surname)
	}

	return s.GetDoctor(ctx, surname)
}

func (s *PostgresStore) GetDoctor(ctx context.Context, surname string) (*Doctor, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, surname, full_name, specialty, created_at FROM doctors WHERE surname_key = $1`,
		strings.ToLower(surname),
	)

	var d Doctor
	var fullName, specialty *string
	err := row.Scan(&d.ID, &d.Surname, &fullName, &specialty, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get doctor %s", surname)
	}
	if fullName != nil {
		d.FullName = *fullName
	}
	if specialty != nil {
		d.Specialty = *specialty
	}
	return &d, nil
}

func (s *PostgresStore) ListDoctors(ctx context.Context) ([]Doctor, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, surname, full_name, specialty, created_at FROM doctors ORDER BY surname_key`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list doctors")
	}
	defer rows.Close()

	var doctors []Doctor
	for rows.Next() {
		var d Doctor
		var fullName, specialty *string
		if err := rows.Scan(&d.ID, &d.Surname, &fullName, &specialty, &d.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan doctor")
		}
		if fullName != nil {
			d.FullName = *fullName
		}
		if specialty != nil {
			d.Specialty = *specialty
		}
		doctors = append(doctors, d)
	}
	return doctors, eris.Wrap(rows.Err(), "postgres: list doctors iterate")
}

func (s *PostgresStore) RemoveDoctor(ctx context.Context, surname string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM doctors WHERE surname_key = $1`,
		strings.ToLower(surname),
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: remove doctor %s", surname)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("doctor not found: %s", surname)
	}
	return nil
}
