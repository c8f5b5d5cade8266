// Package affiliate provides the Affiliate resource: partners who refer
// members and earn commission on sales.
package affiliate

import (
	"context"
	"regexp"
	"time"

	"enercore/internal/core/apperror"
	"enercore/internal/core/entity"
	"enercore/internal/core/types"
	"enercore/internal/domain/query"
	"enercore/internal/domain/transition"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// AffiliateType defines the kind of affiliate.
type AffiliateType string

const (
	TypeIndividual AffiliateType = "individual"
	TypeCompany    AffiliateType = "company"
	TypeNonprofit  AffiliateType = "nonprofit"
)

// Affiliate statuses.
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// Affiliate represents a referral partner.
type Affiliate struct {
	entity.Resource

	// Code is a human-readable unique identifier
	Code string `db:"code" json:"code"`

	// Name is the display name
	Name string `db:"name" json:"name"`

	// Email is the primary contact email
	Email string `db:"email" json:"email"`

	// Type defines the affiliate kind
	Type AffiliateType `db:"type" json:"type"`

	// CommissionRate is the percentage earned per referred sale
	CommissionRate types.Rate `db:"commission_rate" json:"commissionRate"`

	// Usage counters, reset to zero on duplication
	ReferralCount   int         `db:"referral_count" json:"referralCount"`
	TotalCommission types.Money `db:"total_commission" json:"totalCommission"`

	// Transition side-effect fields
	ActivatedAt      *time.Time `db:"activated_at" json:"activatedAt,omitempty"`
	ActivatedBy      *string    `db:"activated_by" json:"activatedBy,omitempty"`
	DeactivatedAt    *time.Time `db:"deactivated_at" json:"deactivatedAt,omitempty"`
	SuspendedAt      *time.Time `db:"suspended_at" json:"suspendedAt,omitempty"`
	SuspensionReason *string    `db:"suspension_reason" json:"suspensionReason,omitempty"`
}

// New creates a new Affiliate in the pending state.
func New(code, name, email string, aType AffiliateType) *Affiliate {
	return &Affiliate{
		Resource: entity.NewResource(StatusPending),
		Code:     code,
		Name:     name,
		Email:    email,
		Type:     aType,
	}
}

// Validate implements entity.Validatable.
func (a *Affiliate) Validate(ctx context.Context) error {
	if a.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if a.Email != "" && !emailRE.MatchString(a.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	switch a.Type {
	case TypeIndividual, TypeCompany, TypeNonprofit:
	default:
		return apperror.NewValidation("unknown affiliate type").
			WithDetail("field", "type")
	}

	if a.CommissionRate.IsNegative() {
		return apperror.NewValidation("commission rate must not be negative").
			WithDetail("field", "commissionRate")
	}

	return nil
}

// Types returns the closed set of affiliate types.
func Types() []AffiliateType {
	return []AffiliateType{TypeIndividual, TypeCompany, TypeNonprofit}
}

// QueryConfig declares the affiliate list-query surface.
func QueryConfig() query.Config {
	return query.Config{
		Entity:       "affiliate",
		FilterFields: []string{"type", "status"},
		RangeFields:  []string{"commission_rate", "referral_count", "created_at"},
		SearchFields: []string{"name", "code", "email"},
		SortFields:   []string{"name", "code", "commission_rate", "referral_count", "status", "created_at"},
		DefaultSort:  query.Sort{Field: "created_at", Desc: true},
		GroupFields:  []string{"status", "type"},
		Aggregates: []query.Aggregate{
			{Field: "commission_rate", Op: query.OpAvg},
			{Field: "total_commission", Op: query.OpSum},
		},
	}
}

// Transitions declares the affiliate status machine.
func Transitions() *transition.Table {
	return &transition.Table{
		Entity:  "affiliate",
		Initial: StatusPending,
		Rules: map[string]transition.Rule{
			"activate": {
				From: []string{StatusPending, StatusInactive},
				To:   StatusActive,
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					return map[string]any{
						"activated_at": req.Now,
						"activated_by": req.Actor,
					}
				},
			},
			"deactivate": {
				From: []string{StatusActive},
				To:   StatusInactive,
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					return map[string]any{
						"deactivated_at": req.Now,
					}
				},
			},
			"suspend": {
				From:           []string{StatusActive},
				To:             StatusSuspended,
				RequiredFields: []string{"suspension_reason"},
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					return map[string]any{
						"suspended_at":      req.Now,
						"suspension_reason": req.GetString("suspension_reason"),
					}
				},
			},
			"reactivate": {
				From: []string{StatusSuspended},
				To:   StatusActive,
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					// Reinstating clears the suspension trail.
					return map[string]any{
						"activated_at":      req.Now,
						"activated_by":      req.Actor,
						"suspended_at":      nil,
						"suspension_reason": nil,
					}
				},
			},
		},
	}
}

// Clone copies an affiliate under a new code for duplication: fresh
// identity, pending status, counters zeroed.
func Clone(src *Affiliate, newCode string) *Affiliate {
	dup := New(newCode, src.Name, src.Email, src.Type)
	dup.CommissionRate = src.CommissionRate
	return dup
}
