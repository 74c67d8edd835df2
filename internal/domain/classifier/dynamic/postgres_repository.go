package dynamic

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPool abstracts the subset of pgxpool.Pool used here to allow mocking in tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ PgxPool = (*pgxpool.Pool)(nil)

const listActivePatternsQuery = `
	SELECT id, name, country, wallet_type, pattern, regex_flags,
	       amount_group, sender_group, priority, is_active, currency
	FROM payment_patterns
	WHERE is_active = TRUE
	ORDER BY priority ASC
`

// PostgresPatternRepository reads dynamic patterns from PostgreSQL
type PostgresPatternRepository struct {
	pgpool PgxPool
}

// NewPostgresPatternRepository creates a PostgreSQL-backed pattern repository
func NewPostgresPatternRepository(pgpool PgxPool) *PostgresPatternRepository {
	return &PostgresPatternRepository{pgpool: pgpool}
}

// ListActive returns all active patterns ordered by ascending priority.
// The sort order from the query must be preserved through the cache.
func (r *PostgresPatternRepository) ListActive(ctx context.Context) ([]*Pattern, error) {
	rows, err := r.pgpool.Query(ctx, listActivePatternsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list active patterns: %w", err)
	}
	defer rows.Close()

	var patterns []*Pattern
	for rows.Next() {
		var p Pattern
		err := rows.Scan(
			&p.ID, &p.Name, &p.Country, &p.WalletType, &p.Pattern, &p.RegexFlags,
			&p.AmountGroup, &p.SenderGroup, &p.Priority, &p.IsActive, &p.Currency,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pattern: %w", err)
		}
		patterns = append(patterns, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read patterns: %w", err)
	}

	return patterns, nil
}

const insertParsingLogQuery = `
	INSERT INTO parsing_logs (
		id, text, country, pattern_id, success,
		extracted_amount, extracted_sender, extracted_source
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// maxLoggedTextLen bounds the stored notification text.
const maxLoggedTextLen = 500

// PostgresAuditRepository appends parsing logs to PostgreSQL
type PostgresAuditRepository struct {
	pgpool PgxPool
}

// NewPostgresAuditRepository creates a PostgreSQL-backed audit repository
func NewPostgresAuditRepository(pgpool PgxPool) *PostgresAuditRepository {
	return &PostgresAuditRepository{pgpool: pgpool}
}

// Insert appends one parsing log entry, truncating oversized text
func (r *PostgresAuditRepository) Insert(ctx context.Context, entry *LogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	text := entry.Text
	if len(text) > maxLoggedTextLen {
		cut := maxLoggedTextLen
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	_, err := r.pgpool.Exec(ctx, insertParsingLogQuery,
		entry.ID, text, entry.Country, entry.PatternID, entry.Success,
		entry.ExtractedAmount, entry.ExtractedSender, entry.ExtractedSource,
	)
	if err != nil {
		return fmt.Errorf("failed to insert parsing log: %w", err)
	}

	return nil
}
