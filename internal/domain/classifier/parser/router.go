package parser

import (
	"log/slog"

	"github.com/FACorreiaa/paynotify/internal/domain/classifier/country"
	"github.com/FACorreiaa/paynotify/internal/domain/classifier/filter"
)

// Router applies the filter stage and dispatches to the matching per-country
// parser, falling back to the symbol-driven generic extractor.
type Router struct {
	parsers map[string]CountryParser
	logger  *slog.Logger
}

// NewRouter creates a router with all dedicated country parsers registered
func NewRouter(logger *slog.Logger) *Router {
	r := &Router{
		parsers: make(map[string]CountryParser),
		logger:  logger,
	}
	r.register(NewPeruParser())
	r.register(NewBoliviaParser())
	return r
}

func (r *Router) register(p CountryParser) {
	r.parsers[p.CountryCode()] = p
}

// Parse classifies a notification text for a country. A nil result means
// "not a receivable payment" and is the expected outcome for most captured
// notifications, never an error.
func (r *Router) Parse(text, countryCode string) *ParsedPayment {
	if reason, rejected := filter.ShouldReject(text); rejected {
		r.logger.Debug("notification rejected", "reason", string(reason), "country", countryCode)
		return nil
	}

	profile, known := country.Get(countryCode)
	if !known {
		r.logger.Warn("unknown country code, using generic parser", "country", countryCode)
		return ParseGeneric(text, "")
	}

	if p, ok := r.parsers[profile.Code]; ok && profile.HasDedicatedParser {
		if result := p.Parse(text); result != nil {
			if result.Currency == "" {
				result.Currency = profile.CurrencyCode
			}
			return result
		}
	}

	if result := ParseGeneric(text, profile.CurrencySymbol); result != nil {
		if result.Currency == "" {
			result.Currency = profile.CurrencyCode
		}
		return result
	}

	return nil
}
