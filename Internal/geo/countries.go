package geo

import (
	"strings"
	"unicode"
)

// validCodes is the fixed allow-list of country codes the pipeline accepts.
// A resolver may never return a code outside this set.
var validCodes = map[string]struct{}{
	"us": {}, "th": {}, "jp": {}, "kr": {}, "cn": {}, "fr": {}, "de": {},
	"es": {}, "it": {}, "ru": {}, "br": {}, "au": {}, "ca": {}, "gb": {},
	"mx": {}, "za": {}, "ae": {}, "ng": {}, "id": {}, "ph": {}, "sg": {},
	"vn": {}, "se": {}, "no": {}, "fi": {}, "dk": {},
}

// aliases maps normalized country names to their code. Keys must already
// be in normalizeKey form.
var aliases = map[string]string{
	"united states":            "us",
	"united states of america": "us",
	"usa":                      "us",
	"america":                  "us",
	"thailand":                 "th",
	"japan":                    "jp",
	"south korea":              "kr",
	"korea":                    "kr",
	"china":                    "cn",
	"france":                   "fr",
	"germany":                  "de",
	"deutschland":              "de",
	"spain":                    "es",
	"italy":                    "it",
	"russia":                   "ru",
	"brazil":                   "br",
	"australia":                "au",
	"canada":                   "ca",
	"united kingdom":           "gb",
	"uk":                       "gb",
	"great britain":            "gb",
	"mexico":                   "mx",
	"south africa":             "za",
	"united arab emirates":     "ae",
	"uae":                      "ae",
	"nigeria":                  "ng",
	"indonesia":                "id",
	"philippines":              "ph",
	"singapore":                "sg",
	"vietnam":                  "vn",
	"sweden":                   "se",
	"norway":                   "no",
	"finland":                  "fi",
	"denmark":                  "dk",
}

// languageByCode maps a country code to the language used for the
// headline-by-language retrieval candidate.
var languageByCode = map[string]string{
	"us": "en", "gb": "en", "au": "en", "ca": "en", "za": "en",
	"ng": "en", "ph": "en", "sg": "en",
	"jp": "ja", "th": "th", "kr": "ko", "cn": "zh",
	"fr": "fr", "de": "de", "es": "es", "it": "it", "ru": "ru",
	"br": "pt", "mx": "es", "ae": "ar", "id": "id", "vn": "vi",
	"se": "sv", "no": "no", "fi": "fi", "dk": "da",
}

// IsValidCode reports whether code is in the allow-list.
func IsValidCode(code string) bool {
	_, ok := validCodes[code]
	return ok
}

// Language returns the headline language for a country code, with
// overrides (from config) taking precedence over the built-in map.
func Language(code string, overrides map[string]string) (string, bool) {
	if lang, ok := overrides[code]; ok && lang != "" {
		return lang, true
	}
	lang, ok := languageByCode[code]
	return lang, ok
}

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false

	for _, r := range s {
		// Keep letters and digits, collapse everything else to single spaces
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevSpace = false
			continue
		}
		if !prevSpace {
			b.WriteByte(' ')
			prevSpace = true
		}
	}

	return strings.TrimSpace(b.String())
}
