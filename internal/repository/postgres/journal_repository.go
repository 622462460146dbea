package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/andresuchdata/autowms/internal/domain"
)

const createScanJournalTable = `
CREATE TABLE IF NOT EXISTS scan_journal (
	id         BIGSERIAL PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL,
	command    TEXT NOT NULL,
	verb       TEXT NOT NULL,
	sku        TEXT NOT NULL,
	requested  INT NOT NULL,
	fulfilled  INT NOT NULL,
	shortfall  INT NOT NULL,
	bins       TEXT NOT NULL
)`

// ScanJournalRepository persists applied scan results to postgres.
type ScanJournalRepository struct {
	db *DB
}

// NewScanJournalRepository creates the repository and ensures the journal
// table exists.
func NewScanJournalRepository(db *DB) (*ScanJournalRepository, error) {
	if _, err := db.Exec(createScanJournalTable); err != nil {
		return nil, fmt.Errorf("create scan_journal table: %w", err)
	}
	return &ScanJournalRepository{db: db}, nil
}

// Append records one applied scan. Bins touched are stored as a
// comma-separated "binCode=applied" list.
func (r *ScanJournalRepository) Append(ctx context.Context, result domain.ScanResult) error {
	bins := make([]string, 0, len(result.Allocations))
	for _, alloc := range result.Allocations {
		bins = append(bins, fmt.Sprintf("%s=%d", alloc.Bin, alloc.Applied))
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO scan_journal (applied_at, command, verb, sku, requested, fulfilled, shortfall, bins)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			time.Now().UTC(),
			result.Command,
			result.Verb,
			result.SKU,
			result.Requested,
			result.Fulfilled,
			result.Shortfall,
			strings.Join(bins, ","),
		)
		if err != nil {
			return fmt.Errorf("insert scan journal row: %w", err)
		}
		return nil
	})
}
