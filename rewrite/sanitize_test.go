package rewrite

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestSanitizerPassthrough(t *testing.T) {
	s := newSanitizer()
	got, err := s.target("simple")
	if err != nil || got != "simple" {
		t.Errorf("target(simple) = %q, %v", got, err)
	}
}

func TestSanitizerReplacesHyphens(t *testing.T) {
	s := newSanitizer()
	got, err := s.target("foo-bar-baz")
	if err != nil || got != "foo_bar_baz" {
		t.Errorf("target(foo-bar-baz) = %q, %v", got, err)
	}
}

func TestSanitizerIdempotent(t *testing.T) {
	s := newSanitizer()
	first, err := s.target("foo-bar")
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.target("foo-bar")
	if err != nil || second != first {
		t.Errorf("repeated target(foo-bar) = %q, %v, want %q", second, err, first)
	}
}

func TestSanitizerExistingCollision(t *testing.T) {
	s := newSanitizer()
	s.addExisting("foo_bar")
	s.addExisting("foo-bar")
	_, err := s.target("foo-bar")
	var coll *CollisionError
	if !errors.As(err, &coll) {
		t.Fatalf("expected CollisionError, got %v", err)
	}
	if !coll.Existing || coll.Target != "foo_bar" || coll.Second != "foo-bar" {
		t.Errorf("collision = %+v", coll)
	}
}

func TestSanitizerMintedCollision(t *testing.T) {
	s := newSanitizer()
	if _, err := s.target("a--b"); err != nil {
		t.Fatal(err)
	}
	_, err := s.target("a-_b")
	var coll *CollisionError
	if !errors.As(err, &coll) {
		t.Fatalf("expected CollisionError, got %v", err)
	}
	if coll.Existing || coll.Target != "a__b" || coll.First != "a--b" || coll.Second != "a-_b" {
		t.Errorf("collision = %+v", coll)
	}
}

func TestSanitizerNearCollisions(t *testing.T) {
	// Random pairs of identifiers built from the same segments joined by
	// either "-" or "_" sanitize to the same target; distinct raw names must
	// never merge silently.
	rnd := rand.New(rand.NewSource(42))
	join := func(parts []string) string {
		var b strings.Builder
		for i, p := range parts {
			if i > 0 {
				if rnd.Intn(2) == 0 {
					b.WriteByte('-')
				} else {
					b.WriteByte('_')
				}
			}
			b.WriteString(p)
		}
		return b.String()
	}
	for i := 0; i < 500; i++ {
		parts := make([]string, 2+rnd.Intn(3))
		for j := range parts {
			parts[j] = string(rune('a' + rnd.Intn(3)))
		}
		a, b := join(parts), join(parts)

		// mirror the collect pre-pass: both raw names exist in the unit
		s := newSanitizer()
		s.addExisting(a)
		s.addExisting(b)

		ta, errA := s.target(a)
		tb, errB := s.target(b)
		if a == b {
			if errA != nil || errB != nil || ta != tb {
				t.Fatalf("same raw %q: targets %q/%q, errors %v/%v", a, ta, tb, errA, errB)
			}
			continue
		}
		if errA == nil && errB == nil {
			t.Fatalf("distinct %q and %q merged into %q/%q", a, b, ta, tb)
		}
		err := errA
		if err == nil {
			err = errB
		}
		var coll *CollisionError
		if !errors.As(err, &coll) {
			t.Fatalf("unexpected error type for %q vs %q: %v", a, b, err)
		}
	}
}

func TestSanitizerHyphenOnlyCheck(t *testing.T) {
	// a hyphen-free identifier is never checked from its own side, even when
	// it equals another identifier's sanitized form
	s := newSanitizer()
	if _, err := s.target("foo-bar"); err != nil {
		t.Fatal(err)
	}
	got, err := s.target("foo_bar")
	if err != nil || got != "foo_bar" {
		t.Errorf("target(foo_bar) = %q, %v, want passthrough", got, err)
	}
}
