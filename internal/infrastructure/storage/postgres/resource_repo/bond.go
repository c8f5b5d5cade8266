package resource_repo

import (
	"context"

	"enercore/internal/domain/resources/bond"
	"enercore/internal/infrastructure/storage/postgres"
)

var _ bond.Repository = (*BondRepo)(nil)

// BondRepo persists bond issues.
type BondRepo struct {
	*BaseResourceRepo[*bond.Bond]
}

// NewBondRepo creates a new bond repository.
func NewBondRepo(txm *postgres.TxManager) *BondRepo {
	return &BondRepo{
		BaseResourceRepo: NewBaseResourceRepo(
			txm,
			"bonds",
			"code",
			postgres.ExtractDBColumns[bond.Bond](),
			bond.QueryConfig(),
			func() *bond.Bond { return &bond.Bond{} },
		),
	}
}

// GetByCode finds a bond issue by its unique code.
func (r *BondRepo) GetByCode(ctx context.Context, code string) (*bond.Bond, error) {
	return r.GetByKey(ctx, code)
}
