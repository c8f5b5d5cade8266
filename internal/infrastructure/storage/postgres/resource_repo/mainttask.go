package resource_repo

import (
	"context"

	"enercore/internal/domain/resources/mainttask"
	"enercore/internal/infrastructure/storage/postgres"
)

var _ mainttask.Repository = (*MaintenanceTaskRepo)(nil)

// MaintenanceTaskRepo persists maintenance tasks.
type MaintenanceTaskRepo struct {
	*BaseResourceRepo[*mainttask.MaintenanceTask]
}

// NewMaintenanceTaskRepo creates a new maintenance task repository.
func NewMaintenanceTaskRepo(txm *postgres.TxManager) *MaintenanceTaskRepo {
	return &MaintenanceTaskRepo{
		BaseResourceRepo: NewBaseResourceRepo(
			txm,
			"maintenance_tasks",
			"number",
			postgres.ExtractDBColumns[mainttask.MaintenanceTask](),
			mainttask.QueryConfig(),
			func() *mainttask.MaintenanceTask { return &mainttask.MaintenanceTask{} },
		),
	}
}

// GetByNumber finds a task by its unique number.
func (r *MaintenanceTaskRepo) GetByNumber(ctx context.Context, number string) (*mainttask.MaintenanceTask, error) {
	return r.GetByKey(ctx, number)
}
