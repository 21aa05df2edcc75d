package services

import (
	"context"

	"forfettario/pkg/models"
)

// LedgerStore is the record store behind the ledger. Every operation is scoped
// to one owner; records of other owners are invisible.
type LedgerStore interface {
	// Snapshot returns the owner's four collections as one read-only ledger.
	Snapshot(ctx context.Context, owner string) (models.Ledger, error)

	// List returns the owner's records of one kind ordered by date.
	List(ctx context.Context, owner string, kind models.Kind) ([]models.Record, error)

	// Get returns a single record.
	Get(ctx context.Context, owner string, kind models.Kind, id string) (models.Record, error)

	// Create stores a new record and returns its id. A record carrying an id
	// keeps it.
	Create(ctx context.Context, owner string, record models.Record) (string, error)

	// Update replaces an existing record.
	Update(ctx context.Context, owner string, record models.Record) error

	// Delete removes a record.
	Delete(ctx context.Context, owner string, kind models.Kind, id string) error
}

// SnapshotSource is the read-only part of a LedgerStore, enough for the
// calculation commands.
type SnapshotSource interface {
	Snapshot(ctx context.Context, owner string) (models.Ledger, error)
}
