package dto

import (
	"github.com/shopspring/decimal"

	"enercore/internal/domain/resources/installation"
)

// CreateInstallationRequest is the request body for registering an installation.
type CreateInstallationRequest struct {
	Code       string  `json:"code"`
	Name       string  `json:"name" binding:"required"`
	Type       string  `json:"type" binding:"required"`
	CapacityKw float64 `json:"capacityKw"`
	Location   string  `json:"location"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateInstallationRequest) ToEntity() *installation.Installation {
	i := installation.New(r.Code, r.Name, installation.InstallationType(r.Type), decimal.NewFromFloat(r.CapacityKw))
	i.Location = r.Location
	return i
}

// UpdateInstallationRequest is the request body for updating an installation.
type UpdateInstallationRequest struct {
	Name       string  `json:"name" binding:"required"`
	Type       string  `json:"type" binding:"required"`
	CapacityKw float64 `json:"capacityKw"`
	Location   string  `json:"location"`
	Version    int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateInstallationRequest) ApplyTo(i *installation.Installation) {
	i.Name = r.Name
	i.Type = installation.InstallationType(r.Type)
	i.CapacityKw = decimal.NewFromFloat(r.CapacityKw)
	i.Location = r.Location
	i.Version = r.Version
}
