// Package country holds the static registry of supported countries.
// The registry is defined once at process start and never mutated; it is
// read both by the classification core (routing, currency tagging) and by
// the account-registration flows (phone validation and formatting).
package country

import (
	"sort"
	"strings"
)

// Profile describes one supported country
type Profile struct {
	Code               string   // ISO 3166-1 alpha-2
	Name               string
	CurrencyCode       string   // ISO 4217
	CurrencySymbol     string
	PhoneCode          string   // international dialing prefix, digits only
	PhoneDigits        int      // expected local number length
	SupportedWallets   []string // ordered by market share
	HasDedicatedParser bool
}

var profiles = []Profile{
	{
		Code: "PE", Name: "Peru",
		CurrencyCode: "PEN", CurrencySymbol: "S/",
		PhoneCode: "51", PhoneDigits: 9,
		SupportedWallets:   []string{"yape", "plin"},
		HasDedicatedParser: true,
	},
	{
		Code: "BO", Name: "Bolivia",
		CurrencyCode: "BOB", CurrencySymbol: "Bs",
		PhoneCode: "591", PhoneDigits: 8,
		SupportedWallets:   []string{"yape", "tigo-money"},
		HasDedicatedParser: true,
	},
	{
		Code: "MX", Name: "Mexico",
		CurrencyCode: "MXN", CurrencySymbol: "$",
		PhoneCode: "52", PhoneDigits: 10,
	},
	{
		Code: "CO", Name: "Colombia",
		CurrencyCode: "COP", CurrencySymbol: "$",
		PhoneCode: "57", PhoneDigits: 10,
		SupportedWallets: []string{"nequi"},
	},
	{
		Code: "AR", Name: "Argentina",
		CurrencyCode: "ARS", CurrencySymbol: "$",
		PhoneCode: "54", PhoneDigits: 10,
	},
	{
		Code: "CL", Name: "Chile",
		CurrencyCode: "CLP", CurrencySymbol: "$",
		PhoneCode: "56", PhoneDigits: 9,
	},
	{
		Code: "EC", Name: "Ecuador",
		CurrencyCode: "USD", CurrencySymbol: "$",
		PhoneCode: "593", PhoneDigits: 9,
	},
	{
		Code: "UY", Name: "Uruguay",
		CurrencyCode: "UYU", CurrencySymbol: "$U",
		PhoneCode: "598", PhoneDigits: 8,
	},
	{
		Code: "DO", Name: "Dominican Republic",
		CurrencyCode: "DOP", CurrencySymbol: "RD$",
		PhoneCode: "1809", PhoneDigits: 7,
	},
	{
		Code: "US", Name: "United States",
		CurrencyCode: "USD", CurrencySymbol: "$",
		PhoneCode: "1", PhoneDigits: 10,
	},
}

// byPhonePrefix holds the profiles sorted longest-phone-code-first so that
// overlapping prefixes resolve to the most specific country. "1809" must be
// checked before "1", otherwise every Dominican number reads as US.
var byPhonePrefix = func() []Profile {
	sorted := make([]Profile, len(profiles))
	copy(sorted, profiles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].PhoneCode) > len(sorted[j].PhoneCode)
	})
	return sorted
}()

// Get returns the profile for a two-letter country code
func Get(code string) (Profile, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, p := range profiles {
		if p.Code == code {
			return p, true
		}
	}
	return Profile{}, false
}

// All returns every supported country profile
func All() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}

// WithDedicatedParser returns the countries that have a hand-written parser
func WithDedicatedParser() []Profile {
	var out []Profile
	for _, p := range profiles {
		if p.HasDedicatedParser {
			out = append(out, p)
		}
	}
	return out
}

// DetectFromPhone strips non-digits from the number and returns the country
// whose dialing prefix matches, preferring longer prefixes.
func DetectFromPhone(phone string) (string, bool) {
	digits := digitsOnly(phone)
	if digits == "" {
		return "", false
	}
	for _, p := range byPhonePrefix {
		if strings.HasPrefix(digits, p.PhoneCode) {
			return p.Code, true
		}
	}
	return "", false
}

// ValidatePhone checks that the number has exactly the expected total length
// for the country: dialing prefix plus local digits. No fuzzy matching.
func ValidatePhone(phone, code string) bool {
	p, ok := Get(code)
	if !ok {
		return false
	}
	digits := digitsOnly(phone)
	if strings.HasPrefix(digits, p.PhoneCode) {
		return len(digits) == len(p.PhoneCode)+p.PhoneDigits
	}
	return len(digits) == p.PhoneDigits
}

// FormatPhone returns the number in +<prefix><local> form, prepending the
// country's dialing prefix when the number is local.
func FormatPhone(phone, code string) string {
	p, ok := Get(code)
	if !ok {
		return phone
	}
	digits := digitsOnly(phone)
	if !strings.HasPrefix(digits, p.PhoneCode) || len(digits) == p.PhoneDigits {
		digits = p.PhoneCode + digits
	}
	return "+" + digits
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
