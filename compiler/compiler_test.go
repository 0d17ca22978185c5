package compiler

import (
	"errors"
	"testing"

	"github.com/coregx/tinyregex/program"
)

func mustCompile(t *testing.T, pattern string) *program.Program {
	t.Helper()
	prog, err := Compile(pattern, DefaultOptions())
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	if !prog.Valid() {
		t.Fatalf("Compile(%q): produced invalid program", pattern)
	}
	return prog
}

func TestCompileEmptyPattern(t *testing.T) {
	prog := mustCompile(t, "")
	if prog.Anchored {
		t.Fatalf("empty pattern should not be anchored")
	}
}

func TestCompileLiteral(t *testing.T) {
	prog := mustCompile(t, "hello")
	if !prog.HasStartByte || prog.StartByte != 'h' {
		t.Fatalf("want start byte 'h', got %+v", prog)
	}
}

func TestCompileAnchored(t *testing.T) {
	prog := mustCompile(t, "^abc")
	if !prog.Anchored {
		t.Fatalf("want anchored, got %+v", prog)
	}
}

func TestCompileAnchoredAlternationNotAnchored(t *testing.T) {
	prog := mustCompile(t, `\(^a\)|b`)
	if prog.Anchored {
		t.Fatalf("alternation with a non-anchored branch must not be anchored")
	}
}

func TestCompileMustLiteral(t *testing.T) {
	prog := mustCompile(t, "a*needle")
	if string(prog.Must) != "needle" {
		t.Fatalf("want must literal %q, got %q", "needle", prog.Must)
	}
}

func TestCompileGroups(t *testing.T) {
	prog := mustCompile(t, `\(a\)\(b\)`)
	if prog.NumCaptures != 2 {
		t.Fatalf("want 2 capture groups, got %d", prog.NumCaptures)
	}
}

func TestCompileTooManyGroups(t *testing.T) {
	pattern := ""
	for i := 0; i < 10; i++ {
		pattern += `\(a\)`
	}
	_, err := Compile(pattern, DefaultOptions())
	if err == nil {
		t.Fatalf("want error for 10 groups")
	}
	var ce *CompileError
	if !errors.As(err, &ce) || !errors.Is(ce.Err, ErrTooManyGroups) {
		t.Fatalf("want ErrTooManyGroups, got %v", err)
	}
}

func TestCompileUnmatchedParen(t *testing.T) {
	_, err := Compile(`\(abc`, DefaultOptions())
	var ce *CompileError
	if !errors.As(err, &ce) || !errors.Is(ce.Err, ErrUnmatchedParen) {
		t.Fatalf("want ErrUnmatchedParen, got %v", err)
	}
}

func TestCompileUnmatchedBracket(t *testing.T) {
	_, err := Compile("[abc", DefaultOptions())
	var ce *CompileError
	if !errors.As(err, &ce) || !errors.Is(ce.Err, ErrUnmatchedBracket) {
		t.Fatalf("want ErrUnmatchedBracket, got %v", err)
	}
}

func TestCompileClassLeadingBracketAndDash(t *testing.T) {
	// "[]]" matches a literal "]"; "[-a]" matches "-" or "a".
	mustCompile(t, "[]]")
	mustCompile(t, "[-a]")
}

func TestCompileInvertedRange(t *testing.T) {
	_, err := Compile("[z-a]", DefaultOptions())
	var ce *CompileError
	if !errors.As(err, &ce) || !errors.Is(ce.Err, ErrInvalidRange) {
		t.Fatalf("want ErrInvalidRange, got %v", err)
	}
}

func TestCompileEmptyStarOperand(t *testing.T) {
	// "(a*)*": the inner "a*" has no guaranteed width, so wrapping it in
	// another "*" must be rejected at compile time rather than produce an
	// infinite loop at match time.
	_, err := Compile(`\(a*\)*`, DefaultOptions())
	var ce *CompileError
	if !errors.As(err, &ce) || !errors.Is(ce.Err, ErrEmptyOperand) {
		t.Fatalf("want ErrEmptyOperand, got %v", err)
	}
}

func TestCompileNestedRepeat(t *testing.T) {
	_, err := Compile("a**", DefaultOptions())
	var ce *CompileError
	if !errors.As(err, &ce) || !errors.Is(ce.Err, ErrNestedRepeat) {
		t.Fatalf("want ErrNestedRepeat, got %v", err)
	}
}

func TestCompileTrailingBackslash(t *testing.T) {
	_, err := Compile(`abc\`, DefaultOptions())
	var ce *CompileError
	if !errors.As(err, &ce) || !errors.Is(ce.Err, ErrTrailingBackslash) {
		t.Fatalf("want ErrTrailingBackslash, got %v", err)
	}
}

func TestCompileTooBig(t *testing.T) {
	pattern := make([]byte, 40000)
	for i := range pattern {
		pattern[i] = 'a'
	}
	_, err := Compile(string(pattern), DefaultOptions())
	var ce *CompileError
	if !errors.As(err, &ce) || !errors.Is(ce.Err, ErrTooBig) {
		t.Fatalf("want ErrTooBig, got %v", err)
	}
}

func TestCompileExcompatGroups(t *testing.T) {
	prog := mustCompile2(t, "(a)(b)", Options{Excompat: true})
	if prog.NumCaptures != 2 {
		t.Fatalf("want 2 capture groups, got %d", prog.NumCaptures)
	}
}

func mustCompile2(t *testing.T, pattern string, opts Options) *program.Program {
	t.Helper()
	prog, err := Compile(pattern, opts)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	return prog
}
