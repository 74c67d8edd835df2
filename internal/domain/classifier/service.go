// Package classifier exposes the single inbound contract of the
// classification core: Classify(text, country) -> payment or nothing.
package classifier

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/paynotify/internal/domain/classifier/country"
	"github.com/FACorreiaa/paynotify/internal/domain/classifier/filter"
	"github.com/FACorreiaa/paynotify/internal/domain/classifier/parser"
	"github.com/FACorreiaa/paynotify/pkg/observability"
)

// DynamicParser is the dynamic pattern engine as seen by the service.
type DynamicParser interface {
	Parse(ctx context.Context, text, countryCode string) *parser.ParsedPayment
}

// Service wires the filter stage, the dynamic pattern engine, and the
// static per-country parsers into the production classification flow.
type Service struct {
	router  *parser.Router
	dynamic DynamicParser
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewService creates the classification service. The dynamic engine may be
// nil, in which case only the static parsers run.
func NewService(router *parser.Router, dynamic DynamicParser, logger *slog.Logger) *Service {
	return &Service{
		router:  router,
		dynamic: dynamic,
		logger:  logger,
		tracer:  otel.Tracer("paynotify/classifier"),
	}
}

// Classify extracts a payment from a captured notification text.
// A nil payment with a nil error means the text is not a receivable
// payment, which is the expected common case, not a failure.
//
// Dynamic patterns are offered first so coverage gaps can be closed from
// configuration; the static parsers are the fallback.
func (s *Service) Classify(ctx context.Context, text, countryCode string) (*parser.ParsedPayment, error) {
	ctx, span := s.tracer.Start(ctx, "classifier.Classify")
	defer span.End()
	span.SetAttributes(attribute.String("classify.country", countryCode))

	text = strings.TrimSpace(text)

	if reason, rejected := filter.ShouldReject(text); rejected {
		observability.RejectionsTotal.WithLabelValues(string(reason)).Inc()
		span.SetAttributes(attribute.String("classify.rejected", string(reason)))
		s.logger.Debug("notification rejected", "reason", string(reason), "country", countryCode)
		return nil, nil
	}

	if s.dynamic != nil {
		if result := s.dynamic.Parse(ctx, text, countryCode); result != nil {
			s.attachCurrency(result, countryCode)
			observability.ClassificationsTotal.WithLabelValues(countryCode, "dynamic").Inc()
			span.SetAttributes(attribute.String("classify.result", "dynamic"))
			return result, nil
		}
	}

	if result := s.router.Parse(text, countryCode); result != nil {
		observability.ClassificationsTotal.WithLabelValues(countryCode, "static").Inc()
		span.SetAttributes(attribute.String("classify.result", "static"))
		return result, nil
	}

	observability.ClassificationsTotal.WithLabelValues(countryCode, "none").Inc()
	span.SetAttributes(attribute.String("classify.result", "none"))
	return nil, nil
}

func (s *Service) attachCurrency(result *parser.ParsedPayment, countryCode string) {
	if result.Currency != "" {
		return
	}
	if profile, ok := country.Get(countryCode); ok {
		result.Currency = profile.CurrencyCode
	}
}
