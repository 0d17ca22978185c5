package ops

import (
	"github.com/coregx/tinyregex/compiler"
	"github.com/coregx/tinyregex/matcher"
)

// Filter flag bits.
const (
	// FlagIndices additionally reports each kept string's 1-based
	// original position alongside it.
	FlagIndices = 1 << 0
	// FlagInvert selects non-matching entries instead of matching ones.
	FlagInvert = 1 << 1
)

// IndexedString pairs a kept string with its 1-based position in the
// original input slice, returned when FlagIndices is set.
type IndexedString struct {
	Index int
	Value string
}

// Filter compiles pattern once and applies it to every entry of strs,
// selecting (or, with FlagInvert, rejecting) the entries that match.
// Selected entries are returned in their original order. With FlagIndices
// set, the result is []IndexedString (each kept string alongside its
// 1-based original position); otherwise it is the selected strings
// themselves ([]string).
func Filter(strs []string, pattern string, flag int) (interface{}, error) {
	prog, err := compiler.Compile(pattern, compiler.DefaultOptions())
	if err != nil {
		return nil, err
	}

	wantIndices := flag&FlagIndices != 0
	invert := flag&FlagInvert != 0

	var indexed []IndexedString
	var values []string
	for i, s := range strs {
		_, matched, err := matcher.Search(prog, []byte(s), 0)
		if err != nil {
			return nil, err
		}
		if matched == invert {
			continue
		}
		if wantIndices {
			indexed = append(indexed, IndexedString{Index: i + 1, Value: s})
		} else {
			values = append(values, s)
		}
	}

	if wantIndices {
		return indexed, nil
	}
	return values, nil
}
