package dto

import (
	"enercore/internal/core/types"
	"enercore/internal/domain/resources/donation"
)

// CreateDonationRequest is the request body for recording a donation.
type CreateDonationRequest struct {
	Number     string  `json:"number"`
	DonorName  string  `json:"donorName" binding:"required"`
	DonorEmail string  `json:"donorEmail"`
	Type       string  `json:"type" binding:"required"`
	Amount     float64 `json:"amount"`
	Campaign   string  `json:"campaign"`
	Anonymous  bool    `json:"anonymous"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateDonationRequest) ToEntity() *donation.Donation {
	d := donation.New(r.Number, r.DonorName, donation.DonationType(r.Type), types.NewMoney(r.Amount))
	d.DonorEmail = r.DonorEmail
	d.Campaign = r.Campaign
	d.Anonymous = r.Anonymous
	return d
}

// UpdateDonationRequest is the request body for updating a donation.
type UpdateDonationRequest struct {
	DonorName  string  `json:"donorName" binding:"required"`
	DonorEmail string  `json:"donorEmail"`
	Type       string  `json:"type" binding:"required"`
	Amount     float64 `json:"amount"`
	Campaign   string  `json:"campaign"`
	Anonymous  bool    `json:"anonymous"`
	Version    int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateDonationRequest) ApplyTo(d *donation.Donation) {
	d.DonorName = r.DonorName
	d.DonorEmail = r.DonorEmail
	d.Type = donation.DonationType(r.Type)
	d.Amount = types.NewMoney(r.Amount)
	d.Campaign = r.Campaign
	d.Anonymous = r.Anonymous
	d.Version = r.Version
}
