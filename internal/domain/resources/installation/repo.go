package installation

import (
	"context"

	"enercore/internal/domain"
)

// Repository defines installation persistence.
type Repository interface {
	domain.ResourceRepository[*Installation]

	// GetByCode finds an installation by its unique code.
	GetByCode(ctx context.Context, code string) (*Installation, error)
}
