package numerator

import (
	"context"
	"errors"
	"testing"
)

type stubGenerator struct {
	next int64
	err  error

	lastSequence string
}

func (s *stubGenerator) Next(ctx context.Context, sequence string) (int64, error) {
	s.lastSequence = sequence
	if s.err != nil {
		return 0, s.err
	}
	s.next++
	return s.next, nil
}

func TestFormat(t *testing.T) {
	cases := []struct {
		prefix string
		n      int64
		want   string
	}{
		{"AFF", 1, "AFF-000001"},
		{"BND", 42, "BND-000042"},
		{"SO", 999999, "SO-999999"},
		{"DON", 1234567, "DON-1234567"},
	}

	for _, c := range cases {
		if got := Format(c.prefix, c.n); got != c.want {
			t.Errorf("Format(%q, %d) = %q, want %q", c.prefix, c.n, got, c.want)
		}
	}
}

func TestNextCode(t *testing.T) {
	gen := &stubGenerator{}

	code, err := NextCode(context.Background(), gen, "bond_code_seq", "BND")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "BND-000001" {
		t.Errorf("got %q, want BND-000001", code)
	}
	if gen.lastSequence != "bond_code_seq" {
		t.Errorf("sequence = %q, want bond_code_seq", gen.lastSequence)
	}

	code, err = NextCode(context.Background(), gen, "bond_code_seq", "BND")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "BND-000002" {
		t.Errorf("got %q, want BND-000002", code)
	}
}

func TestNextCodePropagatesError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("sequence missing")}

	if _, err := NextCode(context.Background(), gen, "nope_seq", "X"); err == nil {
		t.Fatal("expected error")
	}
}
