package donation

import (
	"context"

	"enercore/internal/core/apperror"
	"enercore/internal/core/tx"
	"enercore/internal/domain"
	"enercore/pkg/numerator"
)

const numberSequence = "donation_number_seq"

// Service provides donation business operations.
type Service struct {
	*domain.ResourceService[*Donation]

	repo Repository
	nums numerator.Generator
}

// NewService creates a donation service with number generation and
// uniqueness hooks registered.
func NewService(repo Repository, txm tx.Manager, auditor domain.TransitionAuditor, nums numerator.Generator) *Service {
	s := &Service{
		ResourceService: domain.NewResourceService(domain.ResourceServiceConfig[*Donation]{
			Repo:        repo,
			TxManager:   txm,
			Transitions: Transitions(),
			QueryConfig: QueryConfig(),
			Auditor:     auditor,
			EntityName:  "donation",
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

// GetByNumber finds a donation by its unique number.
func (s *Service) GetByNumber(ctx context.Context, number string) (*Donation, error) {
	d, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, apperror.NewNotFound("donation", number)
	}
	return d, nil
}

func (s *Service) ensureNumber(ctx context.Context, d *Donation) error {
	if d.Number != "" {
		return nil
	}
	number, err := numerator.NextCode(ctx, s.nums, numberSequence, "DON")
	if err != nil {
		return err
	}
	d.Number = number
	return nil
}

func (s *Service) ensureUniqueNumber(ctx context.Context, d *Donation) error {
	exists, err := s.repo.ExistsByKey(ctx, d.Number)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("donation", "number", d.Number)
	}
	return nil
}
