package directory

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS doctors (
	id          TEXT PRIMARY KEY,
	surname     TEXT NOT NULL,
	surname_key TEXT NOT NULL UNIQUE,
	full_name   TEXT,
	specialty   TEXT,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_doctors_surname_key ON doctors(surname_key);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) AddDoctor(ctx context.Context, surname, fullName, specialty string) (*Doctor, error) {
	if strings.TrimSpace(surname) == "" {
		return nil, eris.New("sqlite: surname is required")
	}
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO doctors (id, surname, surname_key, full_name, specialty, created_at) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(surname_key) DO UPDATE SET surname = excluded.surname, full_name = excluded.full_name, specialty = excluded.specialty`,
		id, surname, strings.ToLower(surname), nullable(fullName), nullable(specialty), now,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert doctor %s", surname)
	}

	return s.GetDoctor(ctx, surname)
}

func (s *SQLiteStore) GetDoctor(ctx context.Context, surname string) (*Doctor, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, surname, full_name, specialty, created_at FROM doctors WHERE surname_key = ?`,
		strings.ToLower(surname),
	)

	var d Doctor
	var fullName, specialty sql.NullString
	err := row.Scan(&d.ID, &d.Surname, &fullName, &specialty, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get doctor %s", surname)
	}
	d.FullName = fullName.String
	d.Specialty = specialty.String
	return &d, nil
}

func (s *SQLiteStore) ListDoctors(ctx context.Context) ([]Doctor, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, surname, full_name, specialty, created_at FROM doctors ORDER BY surname_key`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list doctors")
	}
	defer rows.Close()

	var doctors []Doctor
	for rows.Next() {
		var d Doctor
		var fullName, specialty sql.NullString
		if err := rows.Scan(&d.ID, &d.Surname, &fullName, &specialty, &d.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan doctor")
		}
		d.FullName = fullName.String
		d.Specialty = specialty.String
		doctors = append(doctors, d)
	}
	return doctors, eris.Wrap(rows.Err(), "sqlite: list doctors iterate")
}

func (s *SQLiteStore) RemoveDoctor(ctx context.Context, surname string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM doctors WHERE surname_key = ?`,
		strings.ToLower(surname),
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: remove doctor %s", surname)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("doctor not found: %s", surname)
	}
	return nil
}

func nullable(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
