package mainttask

import (
	"context"

	"enercore/internal/domain"
)

// Repository defines maintenance task persistence.
type Repository interface {
	domain.ResourceRepository[*MaintenanceTask]

	// GetByNumber finds a task by its unique number.
	GetByNumber(ctx context.Context, number string) (*MaintenanceTask, error)
}
