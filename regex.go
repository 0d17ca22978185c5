// Package tinyregex is a small POSIX-ish regular expression engine: a
// two-pass compiler produces a compact bytecode program, and a recursive
// backtracking matcher runs it against a byte slice.
//
// Syntax is a reduced, Henry Spencer style dialect, not Perl-compatible:
// "." "^" "$" "*" "+" "?" "|" "[...]" are metacharacters, groups are
// written "\(...\)" by default (see Config.Excompat to swap the role of
// "(" ")" and their backslashed forms), and "\<" "\>" anchor to the start
// and end of a word. There is no Unicode awareness, no POSIX character
// classes, no named groups, no non-greedy quantifiers, no "{m,n}" bounded
// repetition, no lookaround, and at most nine capture groups.
//
// Basic usage:
//
//	re, err := tinyregex.Compile(`\([A-Za-z0-9_]+\)@\([A-Za-z0-9_]+\)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if re.Match([]byte("user@example")) {
//	    fmt.Println("matched!")
//	}
package tinyregex

import (
	"github.com/coregx/tinyregex/compiler"
	"github.com/coregx/tinyregex/matcher"
	"github.com/coregx/tinyregex/program"
	"github.com/coregx/tinyregex/subst"
)

// Regex represents a compiled regular expression.
//
// A Regex holds only an immutable *program.Program and is safe to use
// concurrently from any number of goroutines: every Match/Find call builds
// its own matcher state and shares nothing with any other call.
type Regex struct {
	prog    *program.Program
	pattern string
}

// Compile compiles pattern using DefaultConfig.
//
// Example:
//
//	re, err := tinyregex.Compile(`[0-9]`)
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles pattern and panics if it fails. Useful for patterns
// known to be valid at init time.
//
// Example:
//
//	var wordRE = tinyregex.MustCompile(`\<[a-zA-Z]+\>`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("tinyregex: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles pattern using an explicitly supplied Config
// rather than DefaultConfig.
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if len(pattern) > config.MaxPatternLength {
		return nil, &ConfigError{Field: "MaxPatternLength", Value: config.MaxPatternLength}
	}
	prog, err := compiler.Compile(pattern, config.compilerOptions())
	if err != nil {
		return nil, err
	}
	return &Regex{prog: prog, pattern: pattern}, nil
}

// Match reports whether b contains any match of the pattern.
func (r *Regex) Match(b []byte) bool {
	_, ok, _ := matcher.Search(r.prog, b, 0)
	return ok
}

// MatchString reports whether s contains any match of the pattern.
func (r *Regex) MatchString(s string) bool {
	return r.Match([]byte(s))
}

// Find returns the text of the leftmost match in b, or nil if there is none.
func (r *Regex) Find(b []byte) []byte {
	res, ok, _ := matcher.Search(r.prog, b, 0)
	if !ok {
		return nil
	}
	return b[res.Start:res.End]
}

// FindString returns the text of the leftmost match in s, or "" if there
// is none.
func (r *Regex) FindString(s string) string {
	m := r.Find([]byte(s))
	if m == nil {
		return ""
	}
	return string(m)
}

// FindIndex returns a two-element slice [start, end) describing the
// leftmost match in b, or nil if there is none.
func (r *Regex) FindIndex(b []byte) []int {
	res, ok, _ := matcher.Search(r.prog, b, 0)
	if !ok {
		return nil
	}
	return []int{res.Start, res.End}
}

// FindStringIndex is FindIndex for a string argument.
func (r *Regex) FindStringIndex(s string) []int {
	return r.FindIndex([]byte(s))
}

// FindSubmatch returns the leftmost match and its capture groups.
// result[0] is the whole match; result[i] is group i. A group that did not
// participate is nil. The return value itself is nil if there is no match.
func (r *Regex) FindSubmatch(b []byte) [][]byte {
	res, ok, _ := matcher.Search(r.prog, b, 0)
	if !ok {
		return nil
	}
	out := make([][]byte, r.prog.NumCaptures+1)
	for i := range out {
		if s, e, valid := res.Group(i); valid {
			out[i] = b[s:e]
		}
	}
	return out
}

// FindStringSubmatch is FindSubmatch for a string argument.
func (r *Regex) FindStringSubmatch(s string) []string {
	groups := r.FindSubmatch([]byte(s))
	if groups == nil {
		return nil
	}
	out := make([]string, len(groups))
	for i, g := range groups {
		if g != nil {
			out[i] = string(g)
		}
	}
	return out
}

// FindSubmatchIndex returns index pairs for the leftmost match and its
// capture groups: result[2*i], result[2*i+1] are the start/end of group i.
// An unmatched group has both indices set to -1.
func (r *Regex) FindSubmatchIndex(b []byte) []int {
	res, ok, _ := matcher.Search(r.prog, b, 0)
	if !ok {
		return nil
	}
	out := make([]int, 2*(r.prog.NumCaptures+1))
	for i := 0; i <= r.prog.NumCaptures; i++ {
		if s, e, valid := res.Group(i); valid {
			out[2*i], out[2*i+1] = s, e
		} else {
			out[2*i], out[2*i+1] = -1, -1
		}
	}
	return out
}

// FindStringSubmatchIndex is FindSubmatchIndex for a string argument.
func (r *Regex) FindStringSubmatchIndex(s string) []int {
	return r.FindSubmatchIndex([]byte(s))
}

// FindAll returns every successive, non-overlapping match of the pattern
// in b, left to right. If n >= 0 it returns at most n matches.
func (r *Regex) FindAll(b []byte, n int) [][]byte {
	if n == 0 {
		return nil
	}
	var matches [][]byte
	pos := 0
	for pos <= len(b) {
		res, ok, _ := matcher.Search(r.prog, b, pos)
		if !ok {
			break
		}
		matches = append(matches, b[res.Start:res.End])
		if res.End > pos {
			pos = res.End
		} else {
			pos++
		}
		if n > 0 && len(matches) >= n {
			break
		}
	}
	return matches
}

// FindAllString is FindAll for a string argument.
func (r *Regex) FindAllString(s string, n int) []string {
	matches := r.FindAll([]byte(s), n)
	if matches == nil {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = string(m)
	}
	return out
}

// NumSubexp returns the number of capture groups in the pattern (0 to 9),
// not counting group 0, the whole match.
func (r *Regex) NumSubexp() int {
	return r.prog.NumCaptures
}

// String returns the source pattern the Regex was compiled from.
func (r *Regex) String() string {
	return r.pattern
}

// Expand appends the expansion of template against the leftmost match of
// the Regex in src to dst and returns the extended slice. "&" and "\0"
// expand to the whole match; "\1".."\9" expand to the corresponding
// capture group. maxLen bounds the length the expansion is allowed to
// grow dst to.
func (r *Regex) Expand(dst, template, src []byte, maxLen int) ([]byte, error) {
	res, ok, err := matcher.Search(r.prog, src, 0)
	if err != nil {
		return dst, err
	}
	if !ok {
		return dst, subst.ErrDamagedMatch
	}
	return subst.Expand(&res, src, template, dst, maxLen)
}
