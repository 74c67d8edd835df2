package dynamic

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
)

func patternColumns() []string {
	return []string{
		"id", "name", "country", "wallet_type", "pattern", "regex_flags",
		"amount_group", "sender_group", "priority", "is_active", "currency",
	}
}

func TestPostgresPatternRepository_ListActive(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	firstID, secondID := uuid.New(), uuid.New()
	wallet := "yape"
	currency := "PEN"
	rows := pgxmock.NewRows(patternColumns()).
		AddRow(firstID, "yape incoming", "PE", &wallet, `recibiste S/ ([\d.]+)`, "i", 1, 0, 1, true, &currency).
		AddRow(secondID, "catch all", "ALL", (*string)(nil), `\$ ([\d.]+)`, "i", 1, 0, 5, true, (*string)(nil))
	mock.ExpectQuery(regexp.QuoteMeta(listActivePatternsQuery)).WillReturnRows(rows)

	repo := NewPostgresPatternRepository(mock)
	patterns, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(patterns) != 2 {
		t.Fatalf("expected 2 patterns, got %d", len(patterns))
	}
	if patterns[0].ID != firstID || patterns[0].Priority != 1 {
		t.Fatalf("priority order not preserved: %+v", patterns[0])
	}
	if patterns[0].WalletType == nil || *patterns[0].WalletType != "yape" {
		t.Fatalf("wallet type not scanned: %+v", patterns[0])
	}
	if patterns[1].WalletType != nil || patterns[1].Currency != nil {
		t.Fatalf("nullable columns should stay nil: %+v", patterns[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresPatternRepository_ListActive_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(listActivePatternsQuery)).
		WillReturnError(errors.New("connection refused"))

	repo := NewPostgresPatternRepository(mock)
	if _, err := repo.ListActive(context.Background()); err == nil {
		t.Fatal("expected error from failed query")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresAuditRepository_Insert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	patternID := uuid.New()
	amount := 50.0
	sender := "Juan Perez"
	source := "yape"
	entry := &LogEntry{
		Text:            "Recibiste S/ 50.00 de Juan Perez via Yape",
		Country:         "PE",
		PatternID:       &patternID,
		Success:         true,
		ExtractedAmount: &amount,
		ExtractedSender: &sender,
		ExtractedSource: &source,
	}

	mock.ExpectExec(regexp.QuoteMeta(insertParsingLogQuery)).
		WithArgs(pgxmock.AnyArg(), entry.Text, "PE", &patternID, true, &amount, &sender, &source).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewPostgresAuditRepository(mock)
	if err := repo.Insert(context.Background(), entry); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if entry.ID == uuid.Nil {
		t.Fatal("expected an ID to be assigned")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresAuditRepository_Insert_TruncatesLongText(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	// Multi-byte text longer than the cap; the truncation must never split
	// a rune in half.
	long := strings.Repeat("ñ", maxLoggedTextLen)
	entry := &LogEntry{Text: long, Country: "PE", Success: false}

	mock.ExpectExec(regexp.QuoteMeta(insertParsingLogQuery)).
		WithArgs(pgxmock.AnyArg(), strings.Repeat("ñ", maxLoggedTextLen/2), "PE",
			(*uuid.UUID)(nil), false, (*float64)(nil), (*string)(nil), (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewPostgresAuditRepository(mock)
	if err := repo.Insert(context.Background(), entry); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresAuditRepository_Insert_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(insertParsingLogQuery)).
		WithArgs(pgxmock.AnyArg(), "x", "PE", (*uuid.UUID)(nil), false,
			(*float64)(nil), (*string)(nil), (*string)(nil)).
		WillReturnError(errors.New("table missing"))

	repo := NewPostgresAuditRepository(mock)
	if err := repo.Insert(context.Background(), &LogEntry{Text: "x", Country: "PE"}); err == nil {
		t.Fatal("expected error from failed insert")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
