package resource_repo

import (
	"context"

	"enercore/internal/domain/resources/affiliate"
	"enercore/internal/infrastructure/storage/postgres"
)

var _ affiliate.Repository = (*AffiliateRepo)(nil)

// AffiliateRepo persists affiliates.
type AffiliateRepo struct {
	*BaseResourceRepo[*affiliate.Affiliate]
}

// NewAffiliateRepo creates a new affiliate repository.
func NewAffiliateRepo(txm *postgres.TxManager) *AffiliateRepo {
	return &AffiliateRepo{
		BaseResourceRepo: NewBaseResourceRepo(
			txm,
			"affiliates",
			"code",
			postgres.ExtractDBColumns[affiliate.Affiliate](),
			affiliate.QueryConfig(),
			func() *affiliate.Affiliate { return &affiliate.Affiliate{} },
		),
	}
}

// GetByCode finds an affiliate by its unique code.
func (r *AffiliateRepo) GetByCode(ctx context.Context, code string) (*affiliate.Affiliate, error) {
	return r.GetByKey(ctx, code)
}
