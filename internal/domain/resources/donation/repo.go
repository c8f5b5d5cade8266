package donation

import (
	"context"

	"enercore/internal/domain"
)

// Repository defines donation persistence.
type Repository interface {
	domain.ResourceRepository[*Donation]

	// GetByNumber finds a donation by its unique number.
	GetByNumber(ctx context.Context, number string) (*Donation, error)
}
