package textmatch

import (
	"regexp"
	"strings"
)

// Grammar is a regular expression that must match a whole piece of text.
type Grammar struct {
	re *regexp.Regexp
}

// NewGrammar compiles expr as a fully anchored grammar.
// It panics if expr is not a valid regular expression.
func NewGrammar(expr string) Grammar {
	return Grammar{re: regexp.MustCompile(`^(?:` + expr + `)$`)}
}

// Match reports whether s matches the grammar entirely.
func (g Grammar) Match(s string) bool {
	return g.re.MatchString(s)
}

// Submatch returns the participating capture groups of s,
// or nil if s does not match.
func (g Grammar) Submatch(s string) []string {
	return Captures(g.re, s)
}

// Token is a piece of text located by Scan.
type Token struct {
	Text  string
	Start int
	End   int
}

// Scan splits s on sep and returns, left to right, the pieces that fully match
// any of the grammars.
func Scan(s string, sep byte, grammars ...Grammar) []Token {
	var tokens []Token
	forEachPiece(s, sep, func(piece string, start int) {
		if matchAny(piece, grammars) {
			tokens = append(tokens, Token{Text: piece, Start: start, End: start + len(piece)})
		}
	})
	return tokens
}

// ReplaceTokens returns a copy of s where every sep-bounded piece matching g
// is replaced with replacement.
func ReplaceTokens(s string, sep byte, g Grammar, replacement string) string {
	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, tok := range Scan(s, sep, g) {
		b.WriteString(s[last:tok.Start])
		b.WriteString(replacement)
		last = tok.End
	}
	b.WriteString(s[last:])
	return b.String()
}

// SuffixRun locates the leftmost occurrence of lead such that everything after
// it is a non-empty, sep-joined run of pieces each matching one of the grammars.
// It returns the index of lead.
func SuffixRun(s string, lead, sep byte, grammars ...Grammar) (int, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] != lead {
			continue
		}
		if isRun(s[i+1:], sep, grammars) {
			return i, true
		}
	}
	return -1, false
}

// CaptureGroup returns a capture group matching one or more characters of
// the given character class body.
func CaptureGroup(charClass string) string {
	return "([" + charClass + "]+)"
}

// Captures returns the participating capture groups of the first match of re
// in s. Groups that did not take part in the match are skipped.
func Captures(re *regexp.Regexp, s string) []string {
	idx := re.FindStringSubmatchIndex(s)
	if idx == nil {
		return nil
	}
	captures := make([]string, 0, len(idx)/2-1)
	for i := 2; i+1 < len(idx); i += 2 {
		if idx[i] < 0 {
			continue
		}
		captures = append(captures, s[idx[i]:idx[i+1]])
	}
	return captures
}

func isRun(s string, sep byte, grammars []Grammar) bool {
	ok := true
	forEachPiece(s, sep, func(piece string, _ int) {
		if ok && !matchAny(piece, grammars) {
			ok = false
		}
	})
	return ok
}

func forEachPiece(s string, sep byte, fn func(piece string, start int)) {
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == sep {
			fn(s[start:i], start)
			start = i + 1
		}
	}
}

func matchAny(s string, grammars []Grammar) bool {
	for _, g := range grammars {
		if g.Match(s) {
			return true
		}
	}
	return false
}
