// Package handler provides the thin HTTP surface over the classifier.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/paynotify/internal/domain/classifier/dynamic"
	"github.com/FACorreiaa/paynotify/internal/domain/classifier/parser"
)

// Classifier is the classification service as seen by the handler.
type Classifier interface {
	Classify(ctx context.Context, text, countryCode string) (*parser.ParsedPayment, error)
}

// PatternAdmin exposes the dynamic pattern engine's administrative reads.
type PatternAdmin interface {
	RefreshCache(ctx context.Context) error
	ActivePatterns(ctx context.Context, countryCode string, walletType *string) []*dynamic.Pattern
}

// ClassifyHandler serves the notification ingestion and pattern admin routes
type ClassifyHandler struct {
	svc      Classifier
	patterns PatternAdmin
	logger   *slog.Logger
}

// NewClassifyHandler creates the handler
func NewClassifyHandler(svc Classifier, patterns PatternAdmin, logger *slog.Logger) *ClassifyHandler {
	return &ClassifyHandler{svc: svc, patterns: patterns, logger: logger}
}

type classifyRequest struct {
	Text        string `json:"text"`
	CountryCode string `json:"country_code"`
}

type classifyResponse struct {
	Payment *parser.ParsedPayment `json:"payment"`
}

// Classify handles POST /v1/notifications/classify
func (h *ClassifyHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}
	if req.CountryCode == "" {
		http.Error(w, "country_code is required", http.StatusBadRequest)
		return
	}

	payment, err := h.svc.Classify(r.Context(), req.Text, req.CountryCode)
	if err != nil {
		h.logger.Error("classification failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, classifyResponse{Payment: payment})
}

type patternView struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Country    string  `json:"country"`
	WalletType *string `json:"wallet_type,omitempty"`
	Priority   int     `json:"priority"`
	Currency   *string `json:"currency,omitempty"`
}

// ListPatterns handles GET /v1/patterns?country=PE&wallet=yape
func (h *ClassifyHandler) ListPatterns(w http.ResponseWriter, r *http.Request) {
	countryCode := r.URL.Query().Get("country")
	if countryCode == "" {
		countryCode = dynamic.CountryAll
	}
	var walletType *string
	if wallet := r.URL.Query().Get("wallet"); wallet != "" {
		walletType = &wallet
	}

	patterns := h.patterns.ActivePatterns(r.Context(), countryCode, walletType)
	views := make([]patternView, 0, len(patterns))
	for _, p := range patterns {
		views = append(views, patternView{
			ID:         p.ID.String(),
			Name:       p.Name,
			Country:    p.Country,
			WalletType: p.WalletType,
			Priority:   p.Priority,
			Currency:   p.Currency,
		})
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]any{"patterns": views})
}

// RefreshPatterns handles POST /v1/patterns/refresh
func (h *ClassifyHandler) RefreshPatterns(w http.ResponseWriter, r *http.Request) {
	if err := h.patterns.RefreshCache(r.Context()); err != nil {
		h.logger.Error("pattern cache refresh failed", "error", err)
		http.Error(w, "pattern store unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"status": "refreshed"})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}
