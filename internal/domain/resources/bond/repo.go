package bond

import (
	"context"

	"enercore/internal/domain"
)

// Repository defines bond persistence.
type Repository interface {
	domain.ResourceRepository[*Bond]

	// GetByCode finds a bond issue by its unique code.
	GetByCode(ctx context.Context, code string) (*Bond, error)
}
