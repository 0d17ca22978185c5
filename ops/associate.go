// Package ops implements the composite scanning operations built on top of
// compiler.Compile and matcher.Search: Associate (earliest-match-wins
// tokenized splitting) and Filter (selecting or rejecting strings by
// pattern membership).
package ops

import (
	"errors"
	"strings"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/tinyregex/compiler"
	"github.com/coregx/tinyregex/matcher"
	"github.com/coregx/tinyregex/program"
)

// ErrLengthMismatch is returned when patterns and tokens have different
// lengths.
var ErrLengthMismatch = errors.New("patterns and tokens must have the same length")

// Associator holds the compiled form of a set of (pattern, token) pairs so
// repeated calls to Associate against different input don't recompile the
// patterns each time.
type Associator struct {
	progs   []*program.Program
	tokens  []int
	def     int
	literal *ahocorasick.Automaton // non-nil only when every pattern is a plain literal
}

// NewAssociator compiles patterns and pairs each compiled program with its
// corresponding entry in tokens. def is the tag assigned to any stretch of
// input that no pattern matches.
func NewAssociator(patterns []string, tokens []int, def int) (*Associator, error) {
	if len(patterns) != len(tokens) {
		return nil, ErrLengthMismatch
	}
	progs := make([]*program.Program, len(patterns))
	allLiteral := true
	for i, pat := range patterns {
		prog, err := compiler.Compile(pat, compiler.DefaultOptions())
		if err != nil {
			return nil, err
		}
		progs[i] = prog
		if pat == "" || !isPlainLiteral(pat) {
			allLiteral = false
		}
	}

	a := &Associator{progs: progs, tokens: append([]int(nil), tokens...), def: def}
	if allLiteral && len(patterns) > 0 {
		builder := ahocorasick.NewBuilder()
		for _, pat := range patterns {
			builder.AddPattern([]byte(pat))
		}
		if auto, err := builder.Build(); err == nil {
			a.literal = auto
		}
	}
	return a, nil
}

// isPlainLiteral reports whether pat contains no metacharacter and no
// backslash escape, i.e. compiles to a single EXACTLY node under the
// default (non-excompat) dialect. Used only to decide whether the
// Aho-Corasick prefilter below is applicable; a false negative here just
// costs the prefilter, never correctness.
func isPlainLiteral(pat string) bool {
	return !strings.ContainsAny(pat, `^$.*+?[]<>\|`)
}

// Associate scans str left to right, at each position choosing the
// earliest-starting match across every compiled pattern (ties broken by
// pattern order, i.e. lower index in the original patterns slice wins). A
// zero-length match still advances the scan position by one byte so the
// loop always makes progress. The text between matches (including any
// leading or trailing unmatched stretch) is tagged with def. Returns
// parallel segments/tags slices describing the tokenized split.
func (a *Associator) Associate(str []byte) (segments [][]byte, tags []int, err error) {
	pos := 0
	for pos <= len(str) {
		if a.literal != nil {
			if pos >= len(str) || a.literal.Find(str, pos) == nil {
				if pos < len(str) {
					segments = append(segments, str[pos:])
					tags = append(tags, a.def)
				}
				break
			}
		}

		bestStart, bestEnd, bestIdx := -1, -1, -1
		for i, prog := range a.progs {
			res, ok, err := matcher.Search(prog, str, pos)
			if err != nil {
				return nil, nil, err
			}
			if !ok {
				continue
			}
			if bestIdx == -1 || res.Start < bestStart {
				bestStart, bestEnd, bestIdx = res.Start, res.End, i
			}
		}

		if bestIdx == -1 {
			if pos < len(str) {
				segments = append(segments, str[pos:])
				tags = append(tags, a.def)
			}
			break
		}

		if bestStart > pos {
			segments = append(segments, str[pos:bestStart])
			tags = append(tags, a.def)
		}

		segments = append(segments, str[bestStart:bestEnd])
		tags = append(tags, a.tokens[bestIdx])

		if bestEnd == bestStart {
			pos = bestStart + 1
		} else {
			pos = bestEnd
		}
	}
	return segments, tags, nil
}

// Associate is the one-shot convenience form of Associator.Associate: it
// compiles patterns fresh on every call, so prefer constructing an
// Associator directly when the same pattern set is applied repeatedly.
func Associate(str []byte, patterns []string, tokens []int, def int) ([][]byte, []int, error) {
	a, err := NewAssociator(patterns, tokens, def)
	if err != nil {
		return nil, nil, err
	}
	return a.Associate(str)
}
