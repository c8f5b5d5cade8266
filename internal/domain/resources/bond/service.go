package bond

import (
	"context"

	"enercore/internal/core/apperror"
	"enercore/internal/core/tx"
	"enercore/internal/domain"
	"enercore/pkg/numerator"
)

const codeSequence = "bond_code_seq"

// Service provides bond business operations.
type Service struct {
	*domain.ResourceService[*Bond]

	repo Repository
	nums numerator.Generator
}

// NewService creates a bond service with code generation and uniqueness
// hooks registered.
func NewService(repo Repository, txm tx.Manager, auditor domain.TransitionAuditor, nums numerator.Generator) *Service {
	s := &Service{
		ResourceService: domain.NewResourceService(domain.ResourceServiceConfig[*Bond]{
			Repo:        repo,
			TxManager:   txm,
			Transitions: Transitions(),
			QueryConfig: QueryConfig(),
			Auditor:     auditor,
			EntityName:  "bond",
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

// GetByCode finds a bond issue by its unique code.
func (s *Service) GetByCode(ctx context.Context, code string) (*Bond, error) {
	b, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, apperror.NewNotFound("bond", code)
	}
	return b, nil
}

func (s *Service) ensureCode(ctx context.Context, b *Bond) error {
	if b.Code != "" {
		return nil
	}
	code, err := numerator.NextCode(ctx, s.nums, codeSequence, "BND")
	if err != nil {
		return err
	}
	b.Code = code
	return nil
}

func (s *Service) ensureUniqueCode(ctx context.Context, b *Bond) error {
	exists, err := s.repo.ExistsByKey(ctx, b.Code)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("bond", "code", b.Code)
	}
	return nil
}
