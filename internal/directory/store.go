// Package directory maintains the known-doctor directory used to reconcile
// extracted attending-doctor surnames against their canonical spellings.
package directory

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Doctor is one entry in the directory.
type Doctor struct {
	ID        string    `json:"id"`
	Surname   string    `json:"surname"`
	FullName  string    `json:"full_name,omitempty"`
	Specialty string    `json:"specialty,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store defines the persistence interface for the doctor directory.
type Store interface {
	AddDoctor(ctx context.Context, surname, fullName, specialty string) (*Doctor, error)
	GetDoctor(ctx context.Context, surname string) (*Doctor, error)
	ListDoctors(ctx context.Context) ([]Doctor, error)
	RemoveDoctor(ctx context.Context, surname string) error

	Migrate(ctx context.Context) error
	Close() error
}

// Open builds a Store for the configured driver. An empty driver yields
// a nil store, meaning reconciliation is skipped.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "":
		return nil, nil
	case "sqlite":
		return NewSQLite(dsn)
	case "postgres":
		return NewPostgres(ctx, dsn)
	default:
		return nil, eris.Errorf("directory: unknown driver %q", driver)
	}
}

// Reconcile maps an extracted surname onto its canonical directory spelling.
// Lookups are case-insensitive; a surname with no directory entry is
// returned unchanged. A nil store reconciles nothing.
func Reconcile(ctx context.Context, store Store, surname string) (string, bool) {
	if store == nil || surname == "" {
		return surname, false
	}
	doc, err := store.GetDoctor(ctx, strings.ToLower(surname))
	if err != nil || doc == nil {
		return surname, false
	}
	return doc.Surname, true
}
