// Package sqlite is the local ledger store: one SQLite table per collection,
// every row keyed by owner.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"forfettario/internal/ledger"
	"forfettario/internal/logger"
	"forfettario/pkg/models"
)

var tables = map[models.Kind]string{
	models.KindInvoice:    "fatture",
	models.KindWithdrawal: "prelievi",
	models.KindOutflow:    "uscite",
	models.KindInflow:     "entrate",
}

const tableSchema = `
	CREATE TABLE IF NOT EXISTS %s (
		id TEXT NOT NULL,
		owner TEXT NOT NULL,
		date TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		client TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		amount TEXT NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		excluded INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (owner, id)
	);
	CREATE INDEX IF NOT EXISTS idx_%s_owner_date ON %s (owner, date);
`

// Store implements services.LedgerStore on SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema exists.
// ":memory:" gives a private in-memory database.
func Open(path string) (*Store, error) {
	const op = "sqlite.Open"

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%s: open database: %w", op, err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writes.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: ping database: %w", op, err)
	}

	for _, kind := range models.Kinds {
		table := tables[kind]
		if _, err := db.Exec(fmt.Sprintf(tableSchema, table, table, table)); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: create schema for %s: %w", op, table, err)
		}
	}

	log := logger.WithComponent("sqlite")
	log.Debug().Str("path", path).Msg("Ledger store opened")
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func tableFor(kind models.Kind) (string, error) {
	table, ok := tables[kind]
	if !ok {
		return "", &ledger.ValidationError{Field: "kind", Value: kind, Message: "unknown kind"}
	}
	return table, nil
}

// Snapshot reads the four collections of owner.
func (s *Store) Snapshot(ctx context.Context, owner string) (models.Ledger, error) {
	var l models.Ledger
	for _, kind := range models.Kinds {
		records, err := s.List(ctx, owner, kind)
		if err != nil {
			return models.Ledger{}, err
		}
		for _, r := range records {
			l.Add(r)
		}
	}
	return l, nil
}

// List returns the owner's records of kind ordered by date.
func (s *Store) List(ctx context.Context, owner string, kind models.Kind) ([]models.Record, error) {
	const op = "sqlite.List"

	table, err := tableFor(kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, date, description, client, category, amount, note, excluded
		FROM %s
		WHERE owner = ?
		ORDER BY date, rowid
	`, table), owner)
	if err != nil {
		return nil, fmt.Errorf("%s: query %s: %w", op, table, err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		r, err := scanRecord(rows, kind)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Get returns one record, or ledger.ErrNotFound.
func (s *Store) Get(ctx context.Context, owner string, kind models.Kind, id string) (models.Record, error) {
	const op = "sqlite.Get"

	table, err := tableFor(kind)
	if err != nil {
		return models.Record{}, fmt.Errorf("%s: %w", op, err)
	}

	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT id, date, description, client, category, amount, note, excluded
		FROM %s
		WHERE owner = ? AND id = ?
	`, table), owner, id)

	r, err := scanRecord(row, kind)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, fmt.Errorf("%s: %s %s: %w", op, kind, id, ledger.ErrNotFound)
	}
	if err != nil {
		return models.Record{}, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// Create validates and normalizes the record, then inserts it. A new uuid is
// assigned when the record has no id.
func (s *Store) Create(ctx context.Context, owner string, record models.Record) (string, error) {
	const op = "sqlite.Create"

	r, err := ledger.Prepare(record)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	table, err := tableFor(r.Kind)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, owner, date, description, client, category, amount, note, excluded)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, table),
		r.ID, owner, string(r.Date), r.Description, r.Client, r.Category, r.Amount.String(), r.Note, boolToInt(r.ExcludedFromCharts))
	if err != nil {
		return "", fmt.Errorf("%s: insert into %s: %w", op, table, err)
	}

	log := logger.WithOwner("sqlite", owner)
	log.Debug().
		Str("kind", string(r.Kind)).
		Str("id", r.ID).
		Msg("Record created")
	return r.ID, nil
}

// Update replaces an existing record, or returns ledger.ErrNotFound.
func (s *Store) Update(ctx context.Context, owner string, record models.Record) error {
	const op = "sqlite.Update"

	r, err := ledger.Prepare(record)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	table, err := tableFor(r.Kind)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		UPDATE %s
		SET date = ?, description = ?, client = ?, category = ?, amount = ?, note = ?, excluded = ?
		WHERE owner = ? AND id = ?
	`, table),
		string(r.Date), r.Description, r.Client, r.Category, r.Amount.String(), r.Note, boolToInt(r.ExcludedFromCharts),
		owner, r.ID)
	if err != nil {
		return fmt.Errorf("%s: update %s: %w", op, table, err)
	}
	return checkAffected(op, res, r.Kind, r.ID)
}

// Delete removes a record, or returns ledger.ErrNotFound.
func (s *Store) Delete(ctx context.Context, owner string, kind models.Kind, id string) error {
	const op = "sqlite.Delete"

	table, err := tableFor(kind)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE owner = ? AND id = ?`, table), owner, id)
	if err != nil {
		return fmt.Errorf("%s: delete from %s: %w", op, table, err)
	}
	return checkAffected(op, res, kind, id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner, kind models.Kind) (models.Record, error) {
	var r models.Record
	var date, amount string
	var excluded int
	if err := row.Scan(&r.ID, &date, &r.Description, &r.Client, &r.Category, &amount, &r.Note, &excluded); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Record{}, err
		}
		return models.Record{}, fmt.Errorf("scan %s: %w", kind, err)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return models.Record{}, fmt.Errorf("scan %s %s: bad amount %q: %w", kind, r.ID, amount, err)
	}

	r.Kind = kind
	r.Date = models.Date(date)
	r.Amount = value
	r.ExcludedFromCharts = excluded != 0
	return r, nil
}

func checkAffected(op string, res sql.Result, kind models.Kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %s %s: %w", op, kind, id, ledger.ErrNotFound)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
