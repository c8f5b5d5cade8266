package resource_repo

import (
	"context"

	"enercore/internal/domain/resources/saleorder"
	"enercore/internal/infrastructure/storage/postgres"
)

var _ saleorder.Repository = (*SaleOrderRepo)(nil)

// SaleOrderRepo persists sale orders.
type SaleOrderRepo struct {
	*BaseResourceRepo[*saleorder.SaleOrder]
}

// NewSaleOrderRepo creates a new sale order repository.
func NewSaleOrderRepo(txm *postgres.TxManager) *SaleOrderRepo {
	return &SaleOrderRepo{
		BaseResourceRepo: NewBaseResourceRepo(
			txm,
			"sale_orders",
			"number",
			postgres.ExtractDBColumns[saleorder.SaleOrder](),
			saleorder.QueryConfig(),
			func() *saleorder.SaleOrder { return &saleorder.SaleOrder{} },
		),
	}
}

// GetByNumber finds a sale order by its unique number.
func (r *SaleOrderRepo) GetByNumber(ctx context.Context, number string) (*saleorder.SaleOrder, error) {
	return r.GetByKey(ctx, number)
}
