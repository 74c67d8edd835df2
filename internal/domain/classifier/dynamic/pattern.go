// Package dynamic evaluates externally configured regex rules against
// notification text. Patterns live in the database, are cached in memory
// with a TTL, and extend classification coverage without a deployment.
package dynamic

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// CountryAll is the wildcard scoping a pattern to every country.
const CountryAll = "ALL"

// Pattern is one configured classification rule. Rows are created and
// curated through an administrative surface; this service only reads them.
type Pattern struct {
	ID          uuid.UUID
	Name        string
	Country     string  // two-letter code or CountryAll
	WalletType  *string // nil matches any wallet
	Pattern     string  // regex source as stored
	RegexFlags  string  // subset of "ims"
	AmountGroup int     // 1-based capture index
	SenderGroup int     // 1-based capture index, 0 = no sender capture
	Priority    int     // ascending = evaluated first
	IsActive    bool
	Currency    *string

	compileOnce sync.Once
	compiled    *regexp.Regexp
	compileErr  error
}

// compile builds the regex lazily from the stored source and flags.
// A malformed source poisons only this pattern, never the whole scan.
func (p *Pattern) compile() (*regexp.Regexp, error) {
	p.compileOnce.Do(func() {
		p.compiled, p.compileErr = regexp.Compile(flagPrefix(p.RegexFlags) + p.Pattern)
	})
	return p.compiled, p.compileErr
}

// flagPrefix converts stored flag characters into an inline RE2 group.
// Unsupported characters are dropped rather than failing the pattern.
func flagPrefix(flags string) string {
	var b strings.Builder
	for _, r := range flags {
		switch r {
		case 'i', 'm', 's':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return fmt.Sprintf("(?%s)", b.String())
}

// matchesScope reports whether this pattern applies to the given country
// and (optionally) wallet type.
func (p *Pattern) matchesScope(countryCode string, walletType *string) bool {
	wildcardRequest := countryCode == "" || strings.EqualFold(countryCode, CountryAll)
	if !wildcardRequest && p.Country != CountryAll && !strings.EqualFold(p.Country, countryCode) {
		return false
	}
	if walletType != nil && p.WalletType != nil && !strings.EqualFold(*p.WalletType, *walletType) {
		return false
	}
	return true
}
