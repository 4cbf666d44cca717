// Package marker extracts marker-prefixed tokens from tab-separated text and
// sorts them.
//
// The pipeline is Decode → Tokenize → Filter → Sort → Join. Process runs the
// whole pipeline on raw file bytes and collapses every failure into a single
// processing error.
package marker

import (
	"strings"
	"unicode"
)

const (
	// Marker is the first character of every token kept by Filter.
	Marker = '$'

	// Delimiter separates tokens on input and output.
	Delimiter = "\t"
)

// Result is the outcome of a successful pipeline run.
type Result struct {
	Tokens  []string // Sorted marker tokens
	Text    string   // Tokens joined with Delimiter
	Scanned int      // Number of tokens before filtering
}

// Empty reports whether the run produced no marker tokens.
func (r Result) Empty() bool {
	return r.Text == ""
}

// Tokenize trims surrounding whitespace from the whole document and splits it
// on Delimiter. Individual tokens are left untouched, so an empty document
// yields a single empty token.
func Tokenize(doc string) []string {
	return strings.Split(strings.TrimFunc(doc, isTrimSpace), Delimiter)
}

// isTrimSpace reports whether r is trimmed from the ends of a document: the
// ECMAScript white space and line terminator set. Unlike unicode.IsSpace it
// includes U+FEFF and excludes U+0085.
func isTrimSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\ufeff':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// Filter returns the tokens whose first character is Marker, in input order.
func Filter(tokens []string) []string {
	kept := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if len(t) > 0 && t[0] == Marker {
			kept = append(kept, t)
		}
	}
	return kept
}

// Join concatenates tokens with Delimiter.
func Join(tokens []string) string {
	return strings.Join(tokens, Delimiter)
}

// Extract runs the text stages of the pipeline on an already decoded document.
func Extract(doc string, c Collation) Result {
	tokens := Tokenize(doc)
	sorted := Sort(Filter(tokens), c)
	return Result{
		Tokens:  sorted,
		Text:    Join(sorted),
		Scanned: len(tokens),
	}
}
