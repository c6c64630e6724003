package trade

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultPrefix is used when a company yields no usable prefix characters
const DefaultPrefix = "BRAND"

const maxPrefixLen = 30

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	prefixDisallow = regexp.MustCompile(`[^A-Za-z0-9-]`)
	foldLetters    = strings.NewReplacer("ı", "i", "İ", "I", "ß", "ss", "ø", "o", "Ø", "O", "æ", "ae", "Æ", "AE", "đ", "d", "Đ", "D", "ł", "l", "Ł", "L")
)

// SlugifyPrefix turns a company abbreviation or name into a naming-series prefix:
// accents folded to ASCII, whitespace runs become '-', other characters outside
// [A-Za-z0-9-] dropped, upper-cased and cut to 30 characters.
func SlugifyPrefix(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultPrefix
	}
	if folded, _, err := transform.String(foldMarks(), foldLetters.Replace(value)); err == nil {
		value = folded
	}
	value = whitespaceRun.ReplaceAllString(value, "-")
	value = prefixDisallow.ReplaceAllString(value, "")
	value = strings.ToUpper(value)
	if value == "" {
		return DefaultPrefix
	}
	if len(value) > maxPrefixLen {
		value = value[:maxPrefixLen]
	}
	return value
}

// CompanyPrefix returns the naming prefix of a company: its abbreviation when set, otherwise its name
func CompanyPrefix(abbr, name string) string {
	if strings.TrimSpace(abbr) != "" {
		return SlugifyPrefix(abbr)
	}
	return SlugifyPrefix(name)
}

// foldMarks strips combining marks. Chained transformers keep state, so each call gets its own.
func foldMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
