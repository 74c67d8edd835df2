package dynamic

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LogEntry is a write-only audit record of one classification attempt.
// Successes are sampled; failures are always recorded.
type LogEntry struct {
	ID              uuid.UUID
	Text            string
	Country         string
	PatternID       *uuid.UUID
	Success         bool
	ExtractedAmount *float64
	ExtractedSender *string
	ExtractedSource *string
	CreatedAt       time.Time
}

// PatternRepository reads active patterns from the external store,
// ordered by ascending priority.
type PatternRepository interface {
	ListActive(ctx context.Context) ([]*Pattern, error)
}

// AuditRepository appends parsing log entries. Callers treat writes as
// fire-and-forget; errors never influence classification results.
type AuditRepository interface {
	Insert(ctx context.Context, entry *LogEntry) error
}
