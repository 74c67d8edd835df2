// Package parser extracts structured payment events from raw notification
// text. Each supported country with brand-specific phrasing gets its own
// parser; everything else goes through the symbol-driven generic fallback.
package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Payment method tags attached to extracted payments.
const (
	SourceYape        = "yape"
	SourcePlin        = "plin"
	SourceTigoMoney   = "tigo-money"
	SourceBankDeposit = "bank-deposit"
	SourceOther       = "other"
)

// SenderUnknown is the sentinel used when no counterparty name can be
// extracted from matched text.
const SenderUnknown = "unknown"

// ParsedPayment is the structured result of classifying a notification text.
type ParsedPayment struct {
	Amount    float64 `json:"amount"`
	Sender    string  `json:"sender"`
	Source    string  `json:"source"`
	Currency  string  `json:"currency,omitempty"`
	PatternID string  `json:"pattern_id,omitempty"`
	RawMatch  string  `json:"raw_match,omitempty"`
}

// Validate reports whether an extracted payment is structurally sane:
// a positive finite amount and a known source tag.
func Validate(p *ParsedPayment) bool {
	if p == nil {
		return false
	}
	if p.Amount <= 0 || math.IsNaN(p.Amount) || math.IsInf(p.Amount, 0) {
		return false
	}
	return p.Source != ""
}

// CountryParser is implemented by every per-country static parser.
type CountryParser interface {
	// Parse extracts a payment from the text, or returns nil when the
	// text does not look like an incoming payment for this country.
	Parse(text string) *ParsedPayment
	// CountryCode returns the ISO code this parser handles.
	CountryCode() string
}

// patternSpec ties a compiled pattern to its capture-group semantics.
// Group order is not uniform across phrasing variants (some capture
// name-then-amount, others amount-then-name), so each pattern declares
// its own indices instead of relying on position in the list.
type patternSpec struct {
	re          *regexp.Regexp
	amountGroup int
	senderGroup int // 0 means the pattern captures no sender
}

// evalPatterns tries the specs in order and returns the extraction from the
// first pattern that yields a parseable amount. No scoring across patterns.
func evalPatterns(text, source string, specs []patternSpec) *ParsedPayment {
	for _, spec := range specs {
		m := spec.re.FindStringSubmatch(text)
		if m == nil || len(m) <= spec.amountGroup {
			continue
		}

		amount, err := parseAmount(m[spec.amountGroup])
		if err != nil {
			continue
		}

		sender := SenderUnknown
		if spec.senderGroup > 0 && len(m) > spec.senderGroup {
			if s := cleanSender(m[spec.senderGroup]); s != "" {
				sender = s
			}
		}

		return &ParsedPayment{
			Amount:   amount,
			Sender:   sender,
			Source:   source,
			RawMatch: m[0],
		}
	}
	return nil
}

// parseAmount converts a captured amount string to a float, tolerating
// thousands separators ("1,500.00").
func parseAmount(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// cleanSender normalizes a captured counterparty name.
func cleanSender(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, ".,!¡:;")
	return strings.Join(strings.Fields(s), " ")
}
