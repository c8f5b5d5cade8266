package saleorder

import (
	"context"

	"enercore/internal/domain"
)

// Repository defines sale order persistence.
type Repository interface {
	domain.ResourceRepository[*SaleOrder]

	// GetByNumber finds a sale order by its unique number.
	GetByNumber(ctx context.Context, number string) (*SaleOrder, error)
}
