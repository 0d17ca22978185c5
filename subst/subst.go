// Package subst expands replacement templates against a prior
// matcher.Result, substituting "&" and "\0".."\9" with the corresponding
// capture spans of the match that produced the Result.
package subst

import (
	"bytes"
	"errors"

	"github.com/coregx/tinyregex/matcher"
)

// ErrLineTooLong is returned when the expanded output would not fit in
// the caller-supplied buffer.
var ErrLineTooLong = errors.New("replacement line too long")

// ErrDamagedMatch is returned when the bytes a referenced group would copy
// contain an embedded NUL, indicating the match span is not a clean
// string.
var ErrDamagedMatch = errors.New("damaged match")

// Expand appends the expansion of template to out and returns the
// extended slice. "&" and "\0" both expand to the whole match (group 0);
// "\1".."\9" expand to the corresponding capture group. A backslash
// followed by anything else contributes that byte literally (so "\&" and
// "\\" escape themselves). maxLen bounds the total length the expansion
// is allowed to grow out to; exceeding it fails with ErrLineTooLong. On
// any error, out is returned unchanged, not partially expanded.
func Expand(res *matcher.Result, source, template, out []byte, maxLen int) ([]byte, error) {
	start := len(out)
	buf := out
	for i := 0; i < len(template); i++ {
		c := template[i]
		switch {
		case c == '&':
			var err error
			buf, err = appendGroup(buf, res, source, 0)
			if err != nil {
				return out[:start], err
			}
		case c == '\\' && i+1 < len(template) && isDigit(template[i+1]):
			i++
			n := int(template[i] - '0')
			var err error
			buf, err = appendGroup(buf, res, source, n)
			if err != nil {
				return out[:start], err
			}
		case c == '\\' && i+1 < len(template):
			i++
			buf = append(buf, template[i])
		default:
			buf = append(buf, c)
		}
		if len(buf) > maxLen {
			return out[:start], ErrLineTooLong
		}
	}
	return buf, nil
}

func appendGroup(buf []byte, res *matcher.Result, source []byte, n int) ([]byte, error) {
	s, e, ok := res.Group(n)
	if !ok {
		// A non-participating group contributes nothing.
		return buf, nil
	}
	span := source[s:e]
	if bytes.IndexByte(span, 0) >= 0 {
		return buf, ErrDamagedMatch
	}
	return append(buf, span...), nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
