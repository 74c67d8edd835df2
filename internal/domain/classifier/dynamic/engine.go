package dynamic

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/FACorreiaa/paynotify/internal/domain/classifier/parser"
)

// DefaultSampleRate is the fraction of successful matches that get an
// audit record. Failures are always recorded.
const DefaultSampleRate = 0.1

const auditWriteTimeout = 5 * time.Second

// Engine evaluates the cached dynamic patterns against notification text.
type Engine struct {
	cache  *Cache
	audit  AuditRepository
	logger *slog.Logger
	sample func() bool
}

// NewEngine creates a dynamic pattern engine. A sampleRate outside [0, 1]
// gets the default; zero disables success sampling entirely.
func NewEngine(cache *Cache, audit AuditRepository, sampleRate float64, logger *slog.Logger) *Engine {
	if sampleRate < 0 || sampleRate > 1 {
		sampleRate = DefaultSampleRate
	}
	return &Engine{
		cache:  cache,
		audit:  audit,
		logger: logger,
		sample: func() bool { return rand.Float64() < sampleRate },
	}
}

// Parse evaluates candidate patterns in ascending priority order against
// the original-case text (stored patterns may be case-sensitive by design)
// and returns the first extraction that yields a finite numeric amount.
// Returns nil when no pattern matches; that is an expected outcome and the
// caller falls back to the static parsers.
func (e *Engine) Parse(ctx context.Context, text, countryCode string) *parser.ParsedPayment {
	for _, p := range e.filterScope(e.cache.Get(ctx), countryCode, nil) {
		re, err := p.compile()
		if err != nil {
			// One malformed stored regex must not abort the scan.
			e.logger.Warn("skipping malformed dynamic pattern",
				"pattern_id", p.ID, "name", p.Name, "error", err)
			continue
		}

		m := re.FindStringSubmatch(text)
		if m == nil || p.AmountGroup <= 0 || len(m) <= p.AmountGroup {
			continue
		}

		amount, ok := parseMatchedAmount(m[p.AmountGroup])
		if !ok {
			continue
		}

		sender := parser.SenderUnknown
		if p.SenderGroup > 0 && len(m) > p.SenderGroup {
			if s := strings.TrimSpace(m[p.SenderGroup]); s != "" {
				sender = s
			}
		}

		source := parser.SourceOther
		if p.WalletType != nil && *p.WalletType != "" {
			source = *p.WalletType
		}

		result := &parser.ParsedPayment{
			Amount:    amount,
			Sender:    sender,
			Source:    source,
			PatternID: p.ID.String(),
			RawMatch:  m[0],
		}
		if p.Currency != nil {
			result.Currency = *p.Currency
		}

		if e.sample() {
			e.logAsync(successEntry(text, countryCode, p, result))
		}
		return result
	}

	e.logAsync(failureEntry(text, countryCode))
	return nil
}

// ActivePatterns returns the cached patterns scoped to a country and,
// optionally, a wallet type, preserving priority order.
func (e *Engine) ActivePatterns(ctx context.Context, countryCode string, walletType *string) []*Pattern {
	return e.filterScope(e.cache.Get(ctx), countryCode, walletType)
}

// RefreshCache forces an immediate reload of the pattern snapshot
func (e *Engine) RefreshCache(ctx context.Context) error {
	return e.cache.Refresh(ctx)
}

func (e *Engine) filterScope(patterns []*Pattern, countryCode string, walletType *string) []*Pattern {
	var out []*Pattern
	for _, p := range patterns {
		if p.matchesScope(countryCode, walletType) {
			out = append(out, p)
		}
	}
	return out
}

// logAsync appends an audit record without blocking the classification
// result. Write errors are swallowed: logging is best-effort by contract.
func (e *Engine) logAsync(entry *LogEntry) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		defer cancel()
		if err := e.audit.Insert(ctx, entry); err != nil {
			e.logger.Debug("failed to write parsing log", "error", err)
		}
	}()
}

// parseMatchedAmount strips everything but digits and the decimal point
// before parsing, so regexes that over-capture currency symbols or
// whitespace still yield a usable number.
func parseMatchedAmount(raw string) (float64, bool) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func successEntry(text, countryCode string, p *Pattern, result *parser.ParsedPayment) *LogEntry {
	id := p.ID
	return &LogEntry{
		Text:            text,
		Country:         countryCode,
		PatternID:       &id,
		Success:         true,
		ExtractedAmount: &result.Amount,
		ExtractedSender: &result.Sender,
		ExtractedSource: &result.Source,
		CreatedAt:       time.Now(),
	}
}

func failureEntry(text, countryCode string) *LogEntry {
	return &LogEntry{
		Text:      text,
		Country:   countryCode,
		Success:   false,
		CreatedAt: time.Now(),
	}
}
