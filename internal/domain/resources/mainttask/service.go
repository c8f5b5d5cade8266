package mainttask

import (
	"context"

	"enercore/internal/core/apperror"
	"enercore/internal/core/tx"
	"enercore/internal/domain"
	"enercore/pkg/numerator"
)

const numberSequence = "maintenance_task_number_seq"

// Service provides maintenance task business operations.
type Service struct {
	*domain.ResourceService[*MaintenanceTask]

	repo Repository
	nums numerator.Generator
}

// NewService creates a maintenance task service with number generation
// and uniqueness hooks registered.
func NewService(repo Repository, txm tx.Manager, auditor domain.TransitionAuditor, nums numerator.Generator) *Service {
	s := &Service{
		ResourceService: domain.NewResourceService(domain.ResourceServiceConfig[*MaintenanceTask]{
			Repo:        repo,
			TxManager:   txm,
			Transitions: Transitions(),
			QueryConfig: QueryConfig(),
			Auditor:     auditor,
			EntityName:  "maintenance_task",
			KeyField:    "number",
			Clone:       Clone,
		}),
		repo: repo,
		nums: nums,
	}

	s.Hooks().OnBeforeCreate(s.ensureNumber)
	s.Hooks().OnBeforeCreate(s.ensureUniqueNumber)

	return s
}

// GetByNumber finds a task by its unique number.
func (s *Service) GetByNumber(ctx context.Context, number string) (*MaintenanceTask, error) {
	t, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, apperror.NewNotFound("maintenance_task", number)
	}
	return t, nil
}

func (s *Service) ensureNumber(ctx context.Context, t *MaintenanceTask) error {
	if t.Number != "" {
		return nil
	}
	number, err := numerator.NextCode(ctx, s.nums, numberSequence, "MT")
	if err != nil {
		return err
	}
	t.Number = number
	return nil
}

func (s *Service) ensureUniqueNumber(ctx context.Context, t *MaintenanceTask) error {
	exists, err := s.repo.ExistsByKey(ctx, t.Number)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("maintenance_task", "number", t.Number)
	}
	return nil
}
