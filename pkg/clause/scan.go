package clause

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/leapstack-labs/sqlclause/pkg/ident"
)

// scanner walks a fragment byte by byte while tracking quote and bracket state.
// A doubled quote character inside a quoted run toggles the state twice, which
// leaves escaped quotes inside the run.
type scanner struct {
	quote byte
	depth int
}

// step updates the state for s[i] and reports whether the byte sits at the top level:
// outside any quote and bracket, and not itself a quote or bracket.
func (sc *scanner) step(c byte) bool {
	switch {
	case sc.quote != 0:
		if c == sc.quote {
			sc.quote = 0
		}
		return false
	case ident.IsQuoteChar(c):
		sc.quote = c
		return false
	case c == '(' || c == '[':
		sc.depth++
		return false
	case c == ')' || c == ']':
		if sc.depth > 0 {
			sc.depth--
		}
		return false
	}
	return sc.depth == 0
}

// splitTop splits s on sep wherever sep appears at the top level.
func splitTop(s string, sep byte) []string {
	var (
		parts []string
		sc    scanner
		start int
	)
	for i := 0; i < len(s); i++ {
		if sc.step(s[i]) && s[i] == sep {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// matchingClose returns the index of the bracket closing the one opened at s[open],
// or -1 when it is never closed.
func matchingClose(s string, open int) int {
	var sc scanner
	for i := open; i < len(s); i++ {
		c := s[i]
		sc.step(c)
		if sc.quote == 0 && sc.depth == 0 && (c == ')' || c == ']') {
			return i
		}
	}
	return -1
}

// stripBrackets removes one layer of () or [] when it encloses the whole of s.
func stripBrackets(s string) string {
	if len(s) < 2 {
		return s
	}
	open, last := s[0], s[len(s)-1]
	if !(open == '(' && last == ')') && !(open == '[' && last == ']') {
		return s
	}
	if matchingClose(s, 0) != len(s)-1 {
		return s
	}
	return strings.TrimSpace(s[1 : len(s)-1])
}

// stripKeyword removes a leading keyword from s when it is followed by whitespace,
// an opening bracket or the end of input.
func stripKeyword(s string, kw *regexp.Regexp) string {
	if kw == nil {
		return s
	}
	loc := kw.FindStringIndex(s)
	if loc == nil {
		return s
	}
	rest := s[loc[1]:]
	if rest != "" && !unicode.IsSpace(rune(rest[0])) && rest[0] != '(' && rest[0] != '[' {
		return s
	}
	return strings.TrimSpace(rest)
}

// keywordPattern compiles a case-insensitive prefix matcher for a possibly multi-word keyword.
func keywordPattern(keyword string) *regexp.Regexp {
	if keyword == "" {
		return nil
	}
	words := strings.Fields(keyword)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)^` + strings.Join(words, `\s+`))
}

// splitList prepares a string clause for per-item normalization:
// trim, strip the leading keyword, strip one bracket layer and split on top-level commas.
// Trailing empty elements are dropped; a lone empty string yields no items.
func splitList(s string, kw *regexp.Regexp) []string {
	s = strings.TrimSpace(s)
	s = stripKeyword(s, kw)
	s = stripBrackets(s)
	if s == "" {
		return nil
	}
	parts := splitTop(s, ',')
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	for len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 1 && parts[0] == "" {
		return nil
	}
	return parts
}

// topLevelIndexes returns the offsets of every top-level occurrence of sub in s.
func topLevelIndexes(s, sub string) []int {
	var (
		idx []int
		sc  scanner
	)
	for i := 0; i < len(s); i++ {
		if sc.step(s[i]) && strings.HasPrefix(s[i:], sub) {
			idx = append(idx, i)
			i += len(sub) - 1
		}
	}
	return idx
}

// lastTopLevelSpace returns the offset of the last top-level whitespace byte in s, or -1.
func lastTopLevelSpace(s string) int {
	var sc scanner
	pos := -1
	for i := 0; i < len(s); i++ {
		if sc.step(s[i]) && isSpace(s[i]) {
			pos = i
		}
	}
	return pos
}

// collapseSpace replaces runs of whitespace outside quotes with a single space.
func collapseSpace(s string) string {
	var (
		b       strings.Builder
		quote   byte
		pending bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote == 0 && isSpace(c) {
			pending = true
			continue
		}
		if pending && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pending = false
		switch {
		case quote != 0 && c == quote:
			quote = 0
		case quote == 0 && ident.IsQuoteChar(c):
			quote = c
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
