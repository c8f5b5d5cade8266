package saleorder

import (
	"context"

	"enercore/internal/core/apperror"
	"enercore/internal/core/tx"
	"enercore/internal/domain"
	"enercore/pkg/numerator"
)

const numberSequence = "sale_order_number_seq"

// Service provides sale order business operations.
type Service struct {
	*domain.ResourceService[*SaleOrder]

	repo Repository
	nums numerator.Generator
}

// NewService creates a sale order service with number generation and
// uniqueness hooks registered.
func NewService(repo Repository, txm tx.Manager, auditor domain.TransitionAuditor, nums numerator.Generator) *Service {
	s := &Service{
		ResourceService: domain.NewResourceService(domain.ResourceServiceConfig[*SaleOrder]{
			Repo:        repo,
			TxManager:   txm,
			Transitions: Transitions(),
			QueryConfig: QueryConfig(),
			Auditor:     auditor,
			EntityName:  "sale_order",
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

// GetByNumber finds a sale order by its unique number.
func (s *Service) GetByNumber(ctx context.Context, number string) (*SaleOrder, error) {
	o, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, apperror.NewNotFound("sale_order", number)
	}
	return o, nil
}

func (s *Service) ensureNumber(ctx context.Context, o *SaleOrder) error {
	if o.Number != "" {
		return nil
	}
	number, err := numerator.NextCode(ctx, s.nums, numberSequence, "SO")
	if err != nil {
		return err
	}
	o.Number = number
	return nil
}

func (s *Service) ensureUniqueNumber(ctx context.Context, o *SaleOrder) error {
	exists, err := s.repo.ExistsByKey(ctx, o.Number)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("sale_order", "number", o.Number)
	}
	return nil
}
