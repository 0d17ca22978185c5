package subst

import (
	"testing"

	"github.com/coregx/tinyregex/compiler"
	"github.com/coregx/tinyregex/matcher"
)

func search(t *testing.T, pattern string, input string) (*matcher.Result, []byte) {
	t.Helper()
	prog, err := compiler.Compile(pattern, compiler.DefaultOptions())
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	src := []byte(input)
	res, ok, err := matcher.Search(prog, src, 0)
	if err != nil || !ok {
		t.Fatalf("Search(%q, %q): ok=%v err=%v", pattern, input, ok, err)
	}
	return &res, src
}

func TestExpandWholeMatch(t *testing.T) {
	res, src := search(t, "world", "hello world")
	out, err := Expand(res, src, []byte("[&]"), nil, 256)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if string(out) != "[world]" {
		t.Fatalf("want %q, got %q", "[world]", out)
	}
}

func TestExpandBackreferences(t *testing.T) {
	res, src := search(t, `\(foo\)\(bar\)`, "xxfoobaryy")
	out, err := Expand(res, src, []byte(`\2-\1`), nil, 256)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if string(out) != "bar-foo" {
		t.Fatalf("want %q, got %q", "bar-foo", out)
	}
}

func TestExpandNonParticipatingGroupIsEmpty(t *testing.T) {
	res, src := search(t, `a\(b\)?c`, "ac")
	out, err := Expand(res, src, []byte(`[\1]`), nil, 256)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if string(out) != "[]" {
		t.Fatalf("want %q, got %q", "[]", out)
	}
}

func TestExpandDamagedMatch(t *testing.T) {
	res, src := search(t, `a\(.\)c`, "a\x00c")
	if _, err := Expand(res, src, []byte(`\1`), nil, 256); err != ErrDamagedMatch {
		t.Fatalf("want ErrDamagedMatch, got %v", err)
	}
}

func TestExpandLineTooLong(t *testing.T) {
	res, src := search(t, "a", "a")
	if _, err := Expand(res, src, []byte("0123456789"), nil, 5); err != ErrLineTooLong {
		t.Fatalf("want ErrLineTooLong, got %v", err)
	}
}

func TestExpandEscapes(t *testing.T) {
	res, src := search(t, "a", "a")
	out, err := Expand(res, src, []byte(`\&\\`), nil, 256)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if string(out) != `&\` {
		t.Fatalf("want %q, got %q", `&\`, out)
	}
}
