package affiliate

import (
	"context"

	"enercore/internal/core/apperror"
	"enercore/internal/core/tx"
	"enercore/internal/domain"
	"enercore/pkg/numerator"
)

const codeSequence = "affiliate_code_seq"

// Service provides affiliate business operations.
type Service struct {
	*domain.ResourceService[*Affiliate]

	repo Repository
	nums numerator.Generator
}

// NewService creates an affiliate service with code generation and
// uniqueness hooks registered.
func NewService(repo Repository, txm tx.Manager, auditor domain.TransitionAuditor, nums numerator.Generator) *Service {
	s := &Service{
		ResourceService: domain.NewResourceService(domain.ResourceServiceConfig[*Affiliate]{
			Repo:        repo,
			TxManager:   txm,
			Transitions: Transitions(),
			QueryConfig: QueryConfig(),
			Auditor:     auditor,
			EntityName:  "affiliate",
			KeyField:    "code",
			Clone:       Clone,
		}),
		repo: repo,
		nums: nums,
	}

	s.Hooks().OnBeforeCreate(s.ensureCode)
	s.Hooks().OnBeforeCreate(s.ensureUniqueCode)

	return s
}

// GetByCode finds an affiliate by its unique code.
func (s *Service) GetByCode(ctx context.Context, code string) (*Affiliate, error) {
	a, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, apperror.NewNotFound("affiliate", code)
	}
	return a, nil
}

func (s *Service) ensureCode(ctx context.Context, a *Affiliate) error {
	if a.Code != "" {
		return nil
	}
	code, err := numerator.NextCode(ctx, s.nums, codeSequence, "AFF")
	if err != nil {
		return err
	}
	a.Code = code
	return nil
}

func (s *Service) ensureUniqueCode(ctx context.Context, a *Affiliate) error {
	exists, err := s.repo.ExistsByKey(ctx, a.Code)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("affiliate", "code", a.Code)
	}
	return nil
}
