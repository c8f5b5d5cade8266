package dto

import (
	"enercore/internal/core/types"
	"enercore/internal/domain/resources/affiliate"
)

// CreateAffiliateRequest is the request body for creating an affiliate.
type CreateAffiliateRequest struct {
	Code           string  `json:"code"`
	Name           string  `json:"name" binding:"required"`
	Email          string  `json:"email"`
	Type           string  `json:"type" binding:"required"`
	CommissionRate float64 `json:"commissionRate"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateAffiliateRequest) ToEntity() *affiliate.Affiliate {
	a := affiliate.New(r.Code, r.Name, r.Email, affiliate.AffiliateType(r.Type))
	a.CommissionRate = types.NewRate(r.CommissionRate)
	return a
}

// UpdateAffiliateRequest is the request body for updating an affiliate.
type UpdateAffiliateRequest struct {
	Name           string  `json:"name" binding:"required"`
	Email          string  `json:"email"`
	Type           string  `json:"type" binding:"required"`
	CommissionRate float64 `json:"commissionRate"`
	Version        int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateAffiliateRequest) ApplyTo(a *affiliate.Affiliate) {
	a.Name = r.Name
	a.Email = r.Email
	a.Type = affiliate.AffiliateType(r.Type)
	a.CommissionRate = types.NewRate(r.CommissionRate)
	a.Version = r.Version
}
