package parser

import (
	"regexp"
	"strings"
)

// currencyTokens is the priority-ordered list the generic fallback scans
// when the caller supplies no symbol hint. Longer, more specific tokens
// come first so "RD$" is not swallowed by "$".
var currencyTokens = []string{"S/", "RD$", "$U", "US$", "Bs", "USD", "$", "€"}

// genericSenderPatterns are brand-agnostic "from X" / "X sent you"
// phrasings tried in order after an amount is found.
var genericSenderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bde\s+parte\s+de\s+([\p{L}][\p{L} .'-]*?)(?:[.!,]|$)`),
	regexp.MustCompile(`(?i)\bde\s+([\p{L}][\p{L} .'-]*?)(?:\s+(?:v[ií]a|por|con)\b|[.!,]|$)`),
	regexp.MustCompile(`(?i)([\p{L}][\p{L} .'-]*?)\s+te\s+(?:envi[oó]|mand[oó]|transfiri[oó]|ha\s+enviado)\b`),
	regexp.MustCompile(`(?i)\bfrom\s+([A-Za-z][A-Za-z .'-]*?)(?:[.!,]|$)`),
	regexp.MustCompile(`(?i)([A-Za-z][A-Za-z .'-]*?)\s+(?:sent|transferred)\s+you\b`),
}

// genericAmountCache holds precompiled amount patterns for the known
// tokens; unknown hints are compiled per call. Read-only after init.
var genericAmountCache = func() map[string]*regexp.Regexp {
	cache := make(map[string]*regexp.Regexp, len(currencyTokens))
	for _, token := range currencyTokens {
		cache[token] = compileAmountPattern(token)
	}
	return cache
}()

func compileAmountPattern(symbol string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(symbol) + `\.?\s*([\d,]+(?:\.\d{1,2})?)`)
}

func genericAmountPattern(symbol string) *regexp.Regexp {
	if re, ok := genericAmountCache[symbol]; ok {
		return re
	}
	return compileAmountPattern(symbol)
}

// ParseGeneric is the last-resort extractor used when no country-specific
// parser matches or the country has no dedicated parser. It anchors the
// amount on a currency symbol (the hint if supplied, otherwise the first
// known token present in the text) and extracts the sender best-effort.
// The currency code is attached by the caller, not here.
func ParseGeneric(text, symbolHint string) *ParsedPayment {
	symbol := symbolHint
	if symbol == "" {
		lower := strings.ToLower(text)
		for _, token := range currencyTokens {
			if strings.Contains(lower, strings.ToLower(token)) {
				symbol = token
				break
			}
		}
	}
	if symbol == "" {
		return nil
	}

	m := genericAmountPattern(symbol).FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	amount, err := parseAmount(m[1])
	if err != nil {
		return nil
	}

	sender := SenderUnknown
	for _, re := range genericSenderPatterns {
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
