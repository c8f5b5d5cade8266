package affiliate

import (
	"context"

	"enercore/internal/domain"
)

// Repository defines affiliate persistence.
type Repository interface {
	domain.ResourceRepository[*Affiliate]

	// GetByCode finds an affiliate by its unique code.
	GetByCode(ctx context.Context, code string) (*Affiliate, error)
}
