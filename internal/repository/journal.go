package repository

import (
	"context"

	"github.com/andresuchdata/autowms/internal/domain"
)

// ScanJournal is the optional append-only audit trail of applied scans.
// The ledger itself is in-memory; the journal only records outcomes so
// operators can reconstruct what happened to stock and when.
type ScanJournal interface {
	Append(ctx context.Context, result domain.ScanResult) error
}

type noopScanJournal struct{}

// NewNoopScanJournal returns a journal that records nothing, used when
// persistence is disabled.
func NewNoopScanJournal() ScanJournal {
	return noopScanJournal{}
}

func (noopScanJournal) Append(ctx context.Context, result domain.ScanResult) error {
	return nil
}
