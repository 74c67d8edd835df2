package parser

import (
	"regexp"
	"strings"
)

// PeruParser handles notification phrasing from the Peruvian market:
// Yape and Plin wallets plus bank deposit alerts, all priced in soles.
type PeruParser struct{}

// NewPeruParser creates the Peru parser
func NewPeruParser() *PeruParser {
	return &PeruParser{}
}

// CountryCode returns "PE"
func (p *PeruParser) CountryCode() string { return "PE" }

// Ordered most-specific-first. Patterns run against the original-case text
// so extracted names keep their casing; matching itself is case-insensitive.
var peYapePatterns = []patternSpec{
	{
		// "Yape! Juan Perez te envió un pago por S/ 50"
		re:          regexp.MustCompile(`(?i)yape!?\s+([\p{L}][\p{L} .'-]*?)\s+te\s+envi[oó]\s+un\s+pago\s+por\s+s/\.?\s*([\d,]+(?:\.\d{1,2})?)`),
		senderGroup: 1,
		amountGroup: 2,
	},
	{
		// "Recibiste S/ 50.00 de Juan Perez via Yape"
		re:          regexp.MustCompile(`(?i)recibiste\s+s/\.?\s*([\d,]+(?:\.\d{1,2})?)\s+de\s+(.+?)(?:\s+(?:v[ií]a|por|con)\s+yape\b|[.!]|$)`),
		amountGroup: 1,
		senderGroup: 2,
	},
	{
		// "Juan Perez te yapeó S/ 25.50"
		re:          regexp.MustCompile(`(?i)([\p{L}][\p{L} .'-]*?)\s+te\s+yape[oó]\s+s/\.?\s*([\d,]+(?:\.\d{1,2})?)`),
		senderGroup: 1,
		amountGroup: 2,
	},
	{
		// "Confirmación de pago Yape por S/ 80"
		re:          regexp.MustCompile(`(?i)confirmaci[oó]n\s+de\s+pago.*?s/\.?\s*([\d,]+(?:\.\d{1,2})?)`),
		amountGroup: 1,
	},
}

var pePlinPatterns = []patternSpec{
	{
		// "¡Recibiste un Plin! Maria Lopez te envió S/ 20"
		re:          regexp.MustCompile(`(?i)recibiste\s+un\s+plin!?\s+([\p{L}][\p{L} .'-]*?)\s+te\s+envi[oó]\s+s/\.?\s*([\d,]+(?:\.\d{1,2})?)`),
		senderGroup: 1,
		amountGroup: 2,
	},
	{
		// "Maria te envió S/ 20 por Plin"
		re:          regexp.MustCompile(`(?i)([\p{L}][\p{L} .'-]*?)\s+te\s+envi[oó]\s+s/\.?\s*([\d,]+(?:\.\d{1,2})?)\s+(?:v[ií]a|por|con)\s+plin\b`),
		senderGroup: 1,
		amountGroup: 2,
	},
	{
		// "Recibiste S/ 20 de Maria via Plin"
		re:          regexp.MustCompile(`(?i)recibiste\s+s/\.?\s*([\d,]+(?:\.\d{1,2})?)\s+de\s+(.+?)\s+(?:v[ií]a|por|con)\s+plin\b`),
		amountGroup: 1,
		senderGroup: 2,
	},
	{
		// "Te plinearon S/ 15"
		re:          regexp.MustCompile(`(?i)te\s+plinearon\s+s/\.?\s*([\d,]+(?:\.\d{1,2})?)`),
		amountGroup: 1,
	},
}

var peBankPatterns = []patternSpec{
	{
		// "Depósito por S/ 200 de Juan Perez"
		re:          regexp.MustCompile(`(?i)(?:dep[oó]sito|abono)\s+(?:de|por)\s+s/\.?\s*([\d,]+(?:\.\d{1,2})?)(?:\s+de\s+(.+?)(?:[.!]|$))?`),
		amountGroup: 1,
		senderGroup: 2,
	},
	{
		// "Transferencia recibida de Juan Perez por S/ 300"
		re:          regexp.MustCompile(`(?i)transferencia\s+recibida\s+(?:de\s+(.+?)\s+)?por\s+s/\.?\s*([\d,]+(?:\.\d{1,2})?)`),
		senderGroup: 1,
		amountGroup: 2,
	},
	{
		// "Juan Perez te transfirió S/ 120"
		re:          regexp.MustCompile(`(?i)([\p{L}][\p{L} .'-]*?)\s+te\s+(?:transfiri[oó]|ha\s+transferido)\s+s/\.?\s*([\d,]+(?:\.\d{1,2})?)`),
		senderGroup: 1,
		amountGroup: 2,
	},
}

// Local last resort: anything priced in soles.
var peGenericAmount = regexp.MustCompile(`(?i)s/\.?\s*([\d,]+(?:\.\d{1,2})?)`)

var peGenericSenders = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bde\s+([\p{L}][\p{L} .'-]*?)(?:\s+(?:v[ií]a|por|con)\b|[.!,]|$)`),
	regexp.MustCompile(`(?i)([\p{L}][\p{L} .'-]*?)\s+te\s+(?:envi[oó]|mand[oó]|ha\s+enviado)\b`),
}

var peBankKeywords = []string{"deposito", "depósito", "abono", "transferencia", "bcp", "interbank", "bbva", "scotiabank"}

// Parse routes on wallet brand keywords, then falls through to the local
// sol-anchored generic extractor.
func (p *PeruParser) Parse(text string) *ParsedPayment {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "yape") {
		if r := evalPatterns(text, SourceYape, peYapePatterns); r != nil {
			return r
		}
	}
	if strings.Contains(lower, "plin") {
		if r := evalPatterns(text, SourcePlin, pePlinPatterns); r != nil {
			return r
		}
	}
	if containsAny(lower, peBankKeywords) {
		if r := evalPatterns(text, SourceBankDeposit, peBankPatterns); r != nil {
			return r
		}
	}

	return localGeneric(text, peGenericAmount, peGenericSenders)
}

// localGeneric extracts a symbol-anchored amount with best-effort sender
// lookup, tagging the result as an unrecognized method.
func localGeneric(text string, amountRe *regexp.Regexp, senderRes []*regexp.Regexp) *ParsedPayment {
	m := amountRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	amount, err := parseAmount(m[1])
	if err != nil {
		return nil
	}

	sender := SenderUnknown
	for _, re := range senderRes {
		if sm := re.FindStringSubmatch(text); sm != nil {
			if s := cleanSender(sm[1]); s != "" {
				sender = s
				break
			}
		}
	}

	return &ParsedPayment{
		Amount:   amount,
		Sender:   sender,
		Source:   SourceOther,
		RawMatch: m[0],
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
