package source

import (
	"net/url"
	"path/filepath"
	"strings"
)

// ParseDrop extracts a file path from text a terminal inserts when a file is
// dropped on it. Terminals paste the path quoted, shell-escaped or as a
// file:// URI. When several files are dropped only the first is returned.
// The second result is false if the payload holds no path.
func ParseDrop(payload string) (string, bool) {
	s := strings.TrimSpace(payload)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if s == "" {
		return "", false
	}

	var path string
	switch s[0] {
	case '\'', '"':
		if end := strings.IndexByte(s[1:], s[0]); end >= 0 {
			path = s[1 : 1+end]
		} else {
			path = s[1:]
		}
	default:
		path = firstWord(s)
	}

	if strings.HasPrefix(path, "file://") {
		if u, err := url.Parse(path); err == nil {
			path = u.Path
		}
	}

	if path == "" {
		return "", false
	}
	return path, true
}

// firstWord returns the first space-separated word of s with backslash
// escapes removed.
func firstWord(s string) string {
	if filepath.Separator == '\\' {
		// Windows terminals quote paths with spaces and never escape.
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			i++
			b.WriteByte(s[i])
		case c == ' ':
			return b.String()
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
