package installation

import (
	"context"

	"enercore/internal/core/apperror"
	"enercore/internal/core/tx"
	"enercore/internal/domain"
	"enercore/pkg/numerator"
)

const codeSequence = "installation_code_seq"

// Service provides installation business operations.
type Service struct {
	*domain.ResourceService[*Installation]

	repo Repository
	nums numerator.Generator
}

// NewService creates an installation service with code generation and
// uniqueness hooks registered.
func NewService(repo Repository, txm tx.Manager, auditor domain.TransitionAuditor, nums numerator.Generator) *Service {
	s := &Service{
		ResourceService: domain.NewResourceService(domain.ResourceServiceConfig[*Installation]{
			Repo:        repo,
			TxManager:   txm,
			Transitions: Transitions(),
			QueryConfig: QueryConfig(),
			Auditor:     auditor,
			EntityName:  "installation",
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

// GetByCode finds an installation by its unique code.
func (s *Service) GetByCode(ctx context.Context, code string) (*Installation, error) {
	i, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, apperror.NewNotFound("installation", code)
	}
	return i, nil
}

func (s *Service) ensureCode(ctx context.Context, i *Installation) error {
	if i.Code != "" {
		return nil
	}
	code, err := numerator.NextCode(ctx, s.nums, codeSequence, "INS")
	if err != nil {
		return err
	}
	i.Code = code
	return nil
}

func (s *Service) ensureUniqueCode(ctx context.Context, i *Installation) error {
	exists, err := s.repo.ExistsByKey(ctx, i.Code)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("installation", "code", i.Code)
	}
	return nil
}
