// Package numerator issues sequential document and resource codes.
//
// Codes have the form PREFIX-NNNNNN, where the numeric part comes from a
// named database sequence so concurrent writers never collide.
package numerator

import (
	"context"
	"fmt"
)

// DefaultWidth is the zero-padded width of the numeric part.
const DefaultWidth = 6

// Generator yields the next value of a named sequence.
type Generator interface {
	Next(ctx context.Context, sequence string) (int64, error)
}

// Format renders a sequence value as a code with the given prefix.
func Format(prefix string, n int64) string {
	return fmt.Sprintf("%s-%0*d", prefix, DefaultWidth, n)
}

// NextCode pulls the next value from the sequence and formats it.
func NextCode(ctx context.Context, g Generator, sequence, prefix string) (string, error) {
	n, err := g.Next(ctx, sequence)
	if err != nil {
		return "", fmt.Errorf("numerator: next %s: %w", sequence, err)
	}
	return Format(prefix, n), nil
}
