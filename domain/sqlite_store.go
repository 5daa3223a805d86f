package domain

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a local sqlite database. It exists for
// deployments that outgrow the JSON file; both backends share the same
// transition rules.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database file and ensures the schema exists.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("%s?_journal_mode=WAL", path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite state db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite state db: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite state db: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS domain_states (
	domain       TEXT PRIMARY KEY,
	last_verdict TEXT NOT NULL,
	checked_at   TEXT NOT NULL,
	notified_at  TEXT
);
`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Get(fqdn string) (Record, bool, error) {
	return s.get(context.Background(), s.db, fqdn)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLiteStore) get(ctx context.Context, q queryRower, fqdn string) (Record, bool, error) {
	var verdict, checked string
	var notified sql.NullString
	err := q.QueryRowContext(ctx,
		`SELECT last_verdict, checked_at, notified_at FROM domain_states WHERE domain = ?`,
		fqdn,
	).Scan(&verdict, &checked, &notified)
	if err == sql.ErrNoRows {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("query state for %s: %w", fqdn, err)
	}

	rec := Record{Domain: fqdn}
	if rec.LastVerdict, err = ParseVerdict(verdict); err != nil {
		return Record{}, false, fmt.Errorf("state for %s: %w", fqdn, err)
	}
	if rec.CheckedAt, err = time.Parse(time.RFC3339, checked); err != nil {
		return Record{}, false, fmt.Errorf("state for %s: %w", fqdn, err)
	}
	if notified.Valid && notified.String != "" {
		t, err := time.Parse(time.RFC3339, notified.String)
		if err != nil {
			return Record{}, false, fmt.Errorf("state for %s: %w", fqdn, err)
		}
		rec.NotifiedAt = &t
	}
	return rec, true, nil
}

func (s *SQLiteStore) ShouldNotify(fqdn string, v Verdict) (bool, error) {
	rec, ok, err := s.Get(fqdn)
	if err != nil {
		return false, err
	}
	return ShouldNotifyRecord(rec, ok, v), nil
}

func (s *SQLiteStore) RecordTransition(fqdn string, v Verdict, at time.Time) error {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin state transaction: %w", err)
	}
	defer tx.Rollback()

	prev, ok, err := s.get(ctx, tx, fqdn)
	if err != nil {
		return err
	}
	next := ApplyTransition(prev, ok, fqdn, v, at)

	var notified any
	if next.NotifiedAt != nil {
		notified = next.NotifiedAt.UTC().Format(time.RFC3339)
	}
	_, err = tx.ExecContext(ctx, `
INSERT INTO domain_states (domain, last_verdict, checked_at, notified_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(domain) DO UPDATE SET
	last_verdict = excluded.last_verdict,
	checked_at   = excluded.checked_at,
	notified_at  = excluded.notified_at`,
		fqdn, next.LastVerdict.String(), next.CheckedAt.UTC().Format(time.RFC3339), notified,
	)
	if err != nil {
		return fmt.Errorf("persist state for %s: %w", fqdn, err)
	}
	return tx.Commit()
}
