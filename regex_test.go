package tinyregex

import (
	"reflect"
	"testing"
)

func TestCompileAndMatch(t *testing.T) {
	re := MustCompile(`[0-9]+`)
	if !re.Match([]byte("age 42")) {
		t.Fatalf("want match")
	}
	if re.Match([]byte("no digits here")) {
		t.Fatalf("want no match")
	}
}

func TestFind(t *testing.T) {
	re := MustCompile(`[0-9]+`)
	if got := re.FindString("age 42 years"); got != "42" {
		t.Fatalf("want %q, got %q", "42", got)
	}
	if got := re.FindString("no digits"); got != "" {
		t.Fatalf("want empty string, got %q", got)
	}
}

func TestFindIndex(t *testing.T) {
	re := MustCompile(`world`)
	loc := re.FindIndex([]byte("hello world"))
	if !reflect.DeepEqual(loc, []int{6, 11}) {
		t.Fatalf("want [6 11], got %v", loc)
	}
}

func TestFindSubmatch(t *testing.T) {
	re := MustCompile(`\([A-Za-z0-9_]+\)@\([A-Za-z0-9_]+\)`)
	got := re.FindStringSubmatch("user@example")
	want := []string{"user@example", "user", "example"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestFindSubmatchIndex(t *testing.T) {
	re := MustCompile(`\(a\)\(b\)?`)
	idx := re.FindSubmatchIndex([]byte("a"))
	// group 2 ("b") did not participate, so its indices are -1.
	if idx[4] != -1 || idx[5] != -1 {
		t.Fatalf("want unmatched group 2 to be [-1 -1], got %v", idx)
	}
}

func TestFindAll(t *testing.T) {
	re := MustCompile(`[0-9]+`)
	got := re.FindAllString("1 22 333", -1)
	want := []string{"1", "22", "333"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestFindAllLimit(t *testing.T) {
	re := MustCompile(`[0-9]+`)
	got := re.FindAllString("1 22 333", 2)
	want := []string{"1", "22"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestNumSubexp(t *testing.T) {
	re := MustCompile(`\([A-Za-z0-9_]+\)@\([A-Za-z0-9_]+\)\.\([A-Za-z0-9_]+\)`)
	if re.NumSubexp() != 3 {
		t.Fatalf("want 3, got %d", re.NumSubexp())
	}
}

func TestString(t *testing.T) {
	re := MustCompile(`a+b`)
	if re.String() != "a+b" {
		t.Fatalf("want %q, got %q", "a+b", re.String())
	}
}

func TestExpand(t *testing.T) {
	re := MustCompile(`\([A-Za-z0-9_]+\)@\([A-Za-z0-9_]+\)`)
	src := []byte("user@example")
	out, err := re.Expand(nil, []byte(`\2-\1`), src, 256)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if string(out) != "example-user" {
		t.Fatalf("want %q, got %q", "example-user", out)
	}
}

func TestCompileInvalidPattern(t *testing.T) {
	if _, err := Compile(`\(abc`); err == nil {
		t.Fatalf("want error for unmatched group")
	}
}

func TestCompileWithConfigExcompat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Excompat = true
	re, err := CompileWithConfig(`(a)(b)`, cfg)
	if err != nil {
		t.Fatalf("CompileWithConfig: %v", err)
	}
	if re.NumSubexp() != 2 {
		t.Fatalf("want 2 groups, got %d", re.NumSubexp())
	}
}

func TestCompileRejectsOversizedPattern(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPatternLength = 4
	_, err := CompileWithConfig("abcdefgh", cfg)
	if err == nil {
		t.Fatalf("want error for oversized pattern")
	}
}
