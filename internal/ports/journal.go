package ports

import "cliprelay/internal/domain"

// Journal is the local audit log of delivery attempts. It is not a retry
// queue: records are appended and read back, never replayed.
type Journal interface {
	// Record appends one delivery attempt.
	Record(entry domain.ClassifiedEntry, who string, outcome domain.Outcome) error

	// Recent returns up to limit records, newest first.
	Recent(limit int) ([]domain.Record, error)

	Close() error
}
