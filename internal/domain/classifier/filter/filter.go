// Package filter decides whether a captured notification text is worth
// parsing at all. It rejects outgoing-payment confirmations, promotional
// messages, and texts that carry no recognizable amount.
package filter

import (
	"regexp"
	"strings"
)

// RejectReason classifies why a text was filtered out
type RejectReason string

const (
	ReasonOutgoing    RejectReason = "outgoing"
	ReasonPromotional RejectReason = "promotional"
	ReasonNoAmount    RejectReason = "no-amount"
)

// Verb phrases that confirm the device owner SENT money. The mobile client
// captures every notification from the payment apps, including the user's
// own outgoing payments, which must never be recorded as store income.
var outgoingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\byapeaste\b`),
	regexp.MustCompile(`\bplineaste\b`),
	regexp.MustCompile(`\benviaste\b`),
	regexp.MustCompile(`\bpagaste\b`),
	regexp.MustCompile(`\btransferiste\b`),
	regexp.MustCompile(`\bhas enviado\b`),
	regexp.MustCompile(`\ble (?:enviaste|pagaste|transferiste)\b`),
	regexp.MustCompile(`\btu pago (?:a|fue|de)\b`),
	regexp.MustCompile(`\bpago realizado\b`),
	regexp.MustCompile(`\bcompra realizada\b`),
	regexp.MustCompile(`\brealizaste (?:un|una|el)\b`),
	regexp.MustCompile(`\byou (?:sent|paid)\b`),
}

// Marketing vocabulary used in promotional pushes. These often contain
// currency symbols and digits that would otherwise parse as fake payments.
var promotionalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bdescuento\b`),
	regexp.MustCompile(`\bpromoci[oó]n\b`),
	regexp.MustCompile(`\boferta\b`),
	regexp.MustCompile(`\bsorteo\b`),
	regexp.MustCompile(`\bcup[oó]n\b`),
	regexp.MustCompile(`\bcashback\b`),
	regexp.MustCompile(`\bgana (?:hasta|premios|puntos)\b`),
	regexp.MustCompile(`\baprovecha\b`),
	regexp.MustCompile(`\d+\s*%`),
	regexp.MustCompile(`\bde s/\s*\d+(?:\.\d+)? a s/\s*\d+`),
	regexp.MustCompile(`\bactualiza (?:tu app|la aplicaci[oó]n)\b`),
	regexp.MustCompile(`\bnueva versi[oó]n\b`),
	regexp.MustCompile(`\bprotege tu cuenta\b`),
	regexp.MustCompile(`\brecuerda (?:que|actualizar|proteger)\b`),
	regexp.MustCompile(`\bt[eé]rminos y condiciones\b`),
}

// amountPattern requires a currency token followed by a digit somewhere in
// the text. The token set is the union across all supported countries.
var amountPattern = regexp.MustCompile(`(?:s/\.?|bs\.?|rd\$|\$u|us\$|usd|\$|€)\s*\d`)

// ShouldReject runs the three filters against the text and reports the first
// reason that applies. The filters are a disjunction, so evaluation order
// does not change the outcome; outgoing and promotional run before the
// amount check for early exit.
func ShouldReject(text string) (RejectReason, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))

	for _, re := range outgoingPatterns {
		if re.MatchString(lower) {
			return ReasonOutgoing, true
		}
	}

	for _, re := range promotionalPatterns {
		if re.MatchString(lower) {
			return ReasonPromotional, true
		}
	}

	if !amountPattern.MatchString(lower) {
		return ReasonNoAmount, true
	}

	return "", false
}
