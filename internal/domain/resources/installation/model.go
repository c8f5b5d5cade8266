// Package installation provides the Installation resource: generation
// plants the cooperative owns and operates.
package installation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"enercore/internal/core/apperror"
	"enercore/internal/core/entity"
	"enercore/internal/domain/query"
	"enercore/internal/domain/transition"
)

// InstallationType defines the generation technology.
type InstallationType string

const (
	TypeSolar InstallationType = "solar"
	TypeWind  InstallationType = "wind"
	TypeHydro InstallationType = "hydro"
)

// Installation statuses.
const (
	StatusPlanned        = "planned"
	StatusActive         = "active"
	StatusMaintenance    = "maintenance"
	StatusDecommissioned = "decommissioned"
)

// Installation represents a generation plant.
type Installation struct {
	entity.Resource

	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`

	Type InstallationType `db:"type" json:"type"`

	// CapacityKw is the nameplate capacity in kilowatts
	CapacityKw decimal.Decimal `db:"capacity_kw" json:"capacityKw"`

	Location string `db:"location" json:"location"`

	// TotalProductionKwh accumulates lifetime output, reset on duplication
	TotalProductionKwh decimal.Decimal `db:"total_production_kwh" json:"totalProductionKwh"`

	CommissionedAt       *time.Time `db:"commissioned_at" json:"commissionedAt,omitempty"`
	CommissionedBy       *string    `db:"commissioned_by" json:"commissionedBy,omitempty"`
	MaintenanceStartedAt *time.Time `db:"maintenance_started_at" json:"maintenanceStartedAt,omitempty"`
	MaintenanceReason    *string    `db:"maintenance_reason" json:"maintenanceReason,omitempty"`
	DecommissionedAt     *time.Time `db:"decommissioned_at" json:"decommissionedAt,omitempty"`
	DecommissionReason   *string    `db:"decommission_reason" json:"decommissionReason,omitempty"`
}

// New creates a planned installation.
func New(code, name string, iType InstallationType, capacityKw decimal.Decimal) *Installation {
	return &Installation{
		Resource:   entity.NewResource(StatusPlanned),
		Code:       code,
		Name:       name,
		Type:       iType,
		CapacityKw: capacityKw,
	}
}

// Validate implements entity.Validatable.
func (i *Installation) Validate(ctx context.Context) error {
	if i.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	switch i.Type {
	case TypeSolar, TypeWind, TypeHydro:
	default:
		return apperror.NewValidation("unknown installation type").
			WithDetail("field", "type")
	}

	if !i.CapacityKw.IsPositive() {
		return apperror.NewValidation("capacity must be positive").
			WithDetail("field", "capacityKw")
	}

	return nil
}

// Types returns the closed set of installation types.
func Types() []InstallationType {
	return []InstallationType{TypeSolar, TypeWind, TypeHydro}
}

// QueryConfig declares the installation list-query surface.
func QueryConfig() query.Config {
	return query.Config{
		Entity:       "installation",
		FilterFields: []string{"type", "status", "location"},
		RangeFields:  []string{"capacity_kw", "total_production_kwh", "commissioned_at", "created_at"},
		SearchFields: []string{"name", "code", "location"},
		SortFields:   []string{"name", "code", "capacity_kw", "total_production_kwh", "status", "created_at"},
		DefaultSort:  query.Sort{Field: "name", Desc: false},
		GroupFields:  []string{"status", "type"},
		Aggregates: []query.Aggregate{
			{Field: "capacity_kw", Op: query.OpSum},
			{Field: "total_production_kwh", Op: query.OpSum},
			{Field: "capacity_kw", Op: query.OpAvg},
		},
	}
}

// Transitions declares the installation status machine.
func Transitions() *transition.Table {
	return &transition.Table{
		Entity:  "installation",
		Initial: StatusPlanned,
		Rules: map[string]transition.Rule{
			"commission": {
				From: []string{StatusPlanned},
				To:   StatusActive,
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					return map[string]any{
						"commissioned_at": req.Now,
						"commissioned_by": req.Actor,
					}
				},
			},
			"start_maintenance": {
				From:           []string{StatusActive},
				To:             StatusMaintenance,
				RequiredFields: []string{"maintenance_reason"},
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					return map[string]any{
						"maintenance_started_at": req.Now,
						"maintenance_reason":     req.GetString("maintenance_reason"),
					}
				},
			},
			"resume": {
				From: []string{StatusMaintenance},
				To:   StatusActive,
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					return map[string]any{
						"maintenance_started_at": nil,
						"maintenance_reason":     nil,
					}
				},
			},
			"decommission": {
				From:           []string{StatusActive, StatusMaintenance},
				To:             StatusDecommissioned,
				RequiredFields: []string{"decommission_reason"},
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					return map[string]any{
						"decommissioned_at":   req.Now,
						"decommission_reason": req.GetString("decommission_reason"),
					}
				},
			},
		},
	}
}

// Clone copies an installation under a new code: fresh identity, planned
// status, production counter zeroed.
func Clone(src *Installation, newCode string) *Installation {
	dup := New(newCode, src.Name, src.Type, src.CapacityKw)
	dup.Location = src.Location
	return dup
}
