package marker

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collation names accepted by ParseCollation.
const (
	CollationCodePoint = "codepoint"
	CollationLocale    = "locale"
)

// Collation selects the string ordering used by Sort. The zero value orders
// by Unicode code point.
type Collation struct {
	locale bool
	tag    language.Tag
}

// CodePoint returns the byte-wise (code point) collation.
func CodePoint() Collation {
	return Collation{}
}

// Locale returns a language-aware collation for the given BCP-47 tag.
func Locale(tag string) (Collation, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return Collation{}, fmt.Errorf("parsing locale %q: %w", tag, err)
	}
	return Collation{locale: true, tag: t}, nil
}

// ParseCollation resolves a collation name and locale tag, as found in the
// configuration file, into a Collation.
func ParseCollation(name, tag string) (Collation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", CollationCodePoint:
		return CodePoint(), nil
	case CollationLocale:
		if tag == "" {
			tag = "und"
		}
		return Locale(tag)
	default:
		return Collation{}, fmt.Errorf("unknown collation %q (want %q or %q)", name, CollationCodePoint, CollationLocale)
	}
}

// String returns the collation name, with the locale tag for locale ordering.
func (c Collation) String() string {
	if !c.locale {
		return CollationCodePoint
	}
	return CollationLocale + ":" + c.tag.String()
}

// compareFunc builds a fresh comparator. collate.Collator keeps internal
// buffers, so each Sort call gets its own.
func (c Collation) compareFunc() func(a, b string) int {
	if !c.locale {
		return strings.Compare
	}
	col := collate.New(c.tag)
	return func(a, b string) int {
		if r := col.CompareString(a, b); r != 0 {
			return r
		}
		// Distinct strings never compare equal.
		return strings.Compare(a, b)
	}
}

// Sort returns a sorted copy of tokens in ascending order under c.
func Sort(tokens []string, c Collation) []string {
	sorted := slices.Clone(tokens)
	slices.SortStableFunc(sorted, c.compareFunc())
	return sorted
}
