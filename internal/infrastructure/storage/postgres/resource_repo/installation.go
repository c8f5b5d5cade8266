package resource_repo

import (
	"context"

	"enercore/internal/domain/resources/installation"
	"enercore/internal/infrastructure/storage/postgres"
)

var _ installation.Repository = (*InstallationRepo)(nil)

// InstallationRepo persists installations.
type InstallationRepo struct {
	*BaseResourceRepo[*installation.Installation]
}

// NewInstallationRepo creates a new installation repository.
func NewInstallationRepo(txm *postgres.TxManager) *InstallationRepo {
	return &InstallationRepo{
		BaseResourceRepo: NewBaseResourceRepo(
			txm,
			"installations",
			"code",
			postgres.ExtractDBColumns[installation.Installation](),
			installation.QueryConfig(),
			func() *installation.Installation { return &installation.Installation{} },
		),
	}
}

// GetByCode finds an installation by its unique code.
func (r *InstallationRepo) GetByCode(ctx context.Context, code string) (*installation.Installation, error) {
	return r.GetByKey(ctx, code)
}
