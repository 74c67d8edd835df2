package parser

import (
	"regexp"
	"strings"
)

// BoliviaParser handles the Bolivian market: the BNB-operated Yape wallet,
// Tigo Money, and bank deposit alerts priced in bolivianos.
type BoliviaParser struct{}

// NewBoliviaParser creates the Bolivia parser
func NewBoliviaParser() *BoliviaParser {
	return &BoliviaParser{}
}

// CountryCode returns "BO"
func (p *BoliviaParser) CountryCode() string { return "BO" }

var boYapePatterns = []patternSpec{
	{
		// "Yape! Recibiste Bs 50.00 de Carlos Mamani"
		re:          regexp.MustCompile(`(?i)recibiste\s+bs\.?\s*([\d,]+(?:\.\d{1,2})?)\s+de\s+(.+?)(?:\s+(?:v[ií]a|por|con)\s+yape\b|[.!]|$)`),
		amountGroup: 1,
		senderGroup: 2,
	},
	{
		// "Carlos te yapeó Bs 30"
		re:          regexp.MustCompile(`(?i)([\p{L}][\p{L} .'-]*?)\s+te\s+yape[oó]\s+bs\.?\s*([\d,]+(?:\.\d{1,2})?)`),
		senderGroup: 1,
		amountGroup: 2,
	},
	{
		// "Yape! Carlos Mamani te envió Bs 25.50"
		re:          regexp.MustCompile(`(?i)yape!?\s+([\p{L}][\p{L} .'-]*?)\s+te\s+envi[oó]\s+bs\.?\s*([\d,]+(?:\.\d{1,2})?)`),
		senderGroup: 1,
		amountGroup: 2,
	},
}

var boTigoPatterns = []patternSpec{
	{
		// "Recibiste Bs 100 de Ana Quispe por Tigo Money"
		re:          regexp.MustCompile(`(?i)recibiste\s+bs\.?\s*([\d,]+(?:\.\d{1,2})?)\s+de\s+(.+?)\s+(?:v[ií]a|por|con)\s+tigo\s+money\b`),
		amountGroup: 1,
		senderGroup: 2,
	},
	{
		// "Tigo Money: Ana te envió Bs 45"
		re:          regexp.MustCompile(`(?i)tigo\s+money:?\s+([\p{L}][\p{L} .'-]*?)\s+te\s+envi[oó]\s+bs\.?\s*([\d,]+(?:\.\d{1,2})?)`),
		senderGroup: 1,
		amountGroup: 2,
	},
	{
		// "Giro recibido por Bs 80 en tu billetera Tigo Money"
		re:          regexp.MustCompile(`(?i)giro\s+recibido\s+por\s+bs\.?\s*([\d,]+(?:\.\d{1,2})?)`),
		amountGroup: 1,
	},
}

var boBankPatterns = []patternSpec{
	{
		// "Depósito por Bs 500 de Luis Condori"
		re:          regexp.MustCompile(`(?i)(?:dep[oó]sito|abono)\s+(?:de|por)\s+bs\.?\s*([\d,]+(?:\.\d{1,2})?)(?:\s+de\s+(.+?)(?:[.!]|$))?`),
		amountGroup: 1,
		senderGroup: 2,
	},
	{
		// "Transferencia recibida de Luis por Bs 200"
		re:          regexp.MustCompile(`(?i)transferencia\s+recibida\s+(?:de\s+(.+?)\s+)?por\s+bs\.?\s*([\d,]+(?:\.\d{1,2})?)`),
		senderGroup: 1,
		amountGroup: 2,
	},
}

var boGenericAmount = regexp.MustCompile(`(?i)bs\.?\s*([\d,]+(?:\.\d{1,2})?)`)

var boGenericSenders = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bde\s+([\p{L}][\p{L} .'-]*?)(?:\s+(?:v[ií]a|por|con)\b|[.!,]|$)`),
	regexp.MustCompile(`(?i)([\p{L}][\p{L} .'-]*?)\s+te\s+(?:envi[oó]|mand[oó]|ha\s+enviado)\b`),
}

var boBankKeywords = []string{"deposito", "depósito", "abono", "transferencia", "bnb", "mercantil", "union", "unión"}

// Parse routes on wallet brand keywords, then falls through to the local
// boliviano-anchored generic extractor.
func (p *BoliviaParser) Parse(text string) *ParsedPayment {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "yape") {
		if r := evalPatterns(text, SourceYape, boYapePatterns); r != nil {
			return r
		}
	}
	if strings.Contains(lower, "tigo") {
		if r := evalPatterns(text, SourceTigoMoney, boTigoPatterns); r != nil {
			return r
		}
	}
	if containsAny(lower, boBankKeywords) {
		if r := evalPatterns(text, SourceBankDeposit, boBankPatterns); r != nil {
			return r
		}
	}

	return localGeneric(text, boGenericAmount, boGenericSenders)
}
