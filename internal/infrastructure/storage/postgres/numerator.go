package postgres

import (
	"context"
	"fmt"

	"enercore/pkg/numerator"
)

// Compile-time check that SequenceNumerator implements numerator.Generator.
var _ numerator.Generator = (*SequenceNumerator)(nil)

// SequenceNumerator issues code numbers from native PostgreSQL sequences.
// Sequences never hand out the same value twice, so generated codes are
// collision-free under concurrency.
type SequenceNumerator struct {
	txManager *TxManager
}

// NewSequenceNumerator creates a sequence-backed numerator.
func NewSequenceNumerator(txManager *TxManager) *SequenceNumerator {
	return &SequenceNumerator{txManager: txManager}
}

// Next implements numerator.Generator.
func (n *SequenceNumerator) Next(ctx context.Context, sequence string) (int64, error) {
	querier := n.txManager.GetQuerier(ctx)

	var value int64
	err := querier.QueryRow(ctx, "SELECT nextval($1::regclass)", sequence).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("nextval %s: %w", sequence, err)
	}

	return value, nil
}
