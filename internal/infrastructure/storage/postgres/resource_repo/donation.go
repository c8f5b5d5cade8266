package resource_repo

import (
	"context"

	"enercore/internal/domain/resources/donation"
	"enercore/internal/infrastructure/storage/postgres"
)

var _ donation.Repository = (*DonationRepo)(nil)

// DonationRepo persists donations.
type DonationRepo struct {
	*BaseResourceRepo[*donation.Donation]
}

// NewDonationRepo creates a new donation repository.
func NewDonationRepo(txm *postgres.TxManager) *DonationRepo {
	return &DonationRepo{
		BaseResourceRepo: NewBaseResourceRepo(
			txm,
			"donations",
			"number",
			postgres.ExtractDBColumns[donation.Donation](),
			donation.QueryConfig(),
			func() *donation.Donation { return &donation.Donation{} },
		),
	}
}

// GetByNumber finds a donation by its unique number.
func (r *DonationRepo) GetByNumber(ctx context.Context, number string) (*donation.Donation, error) {
	return r.GetByKey(ctx, number)
}
