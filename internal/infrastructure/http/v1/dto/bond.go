package dto

import (
	"enercore/internal/core/types"
	"enercore/internal/domain/resources/bond"
)

// CreateBondRequest is the request body for creating a bond issue.
type CreateBondRequest struct {
	Code         string  `json:"code"`
	Name         string  `json:"name" binding:"required"`
	Type         string  `json:"type" binding:"required"`
	FaceValue    float64 `json:"faceValue"`
	InterestRate float64 `json:"interestRate"`
	TermMonths   int     `json:"termMonths"`
	TotalUnits   int     `json:"totalUnits"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateBondRequest) ToEntity() *bond.Bond {
	b := bond.New(r.Code, r.Name, bond.BondType(r.Type))
	b.FaceValue = types.NewMoney(r.FaceValue)
	b.InterestRate = types.NewRate(r.InterestRate)
	b.TermMonths = r.TermMonths
	b.TotalUnits = r.TotalUnits
	return b
}

// UpdateBondRequest is the request body for updating a bond issue.
type UpdateBondRequest struct {
	Name         string  `json:"name" binding:"required"`
	Type         string  `json:"type" binding:"required"`
	FaceValue    float64 `json:"faceValue"`
	InterestRate float64 `json:"interestRate"`
	TermMonths   int     `json:"termMonths"`
	TotalUnits   int     `json:"totalUnits"`
	Version      int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateBondRequest) ApplyTo(b *bond.Bond) {
	b.Name = r.Name
	b.Type = bond.BondType(r.Type)
	b.FaceValue = types.NewMoney(r.FaceValue)
	b.InterestRate = types.NewRate(r.InterestRate)
	b.TermMonths = r.TermMonths
	b.TotalUnits = r.TotalUnits
	b.Version = r.Version
}
