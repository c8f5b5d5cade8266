// Package bond provides the Bond resource: fixed-term investment
// instruments the cooperative issues to finance installations.
package bond

import (
	"context"
	"time"

	"enercore/internal/core/apperror"
	"enercore/internal/core/entity"
	"enercore/internal/core/types"
	"enercore/internal/domain/query"
	"enercore/internal/domain/transition"
)

// BondType defines the interest model.
type BondType string

const (
	TypeFixedRate    BondType = "fixed_rate"
	TypeVariableRate BondType = "variable_rate"
	TypeZeroCoupon   BondType = "zero_coupon"
)

// Bond statuses.
const (
	StatusDraft     = "draft"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusActive    = "active"
	StatusMatured   = "matured"
	StatusCancelled = "cancelled"
)

// Bond represents a bond issue.
type Bond struct {
	entity.Resource

	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`

	Type BondType `db:"type" json:"type"`

	// FaceValue is the price of a single unit
	FaceValue types.Money `db:"face_value" json:"faceValue"`

	// InterestRate is the annual rate in percent
	InterestRate types.Rate `db:"interest_rate" json:"interestRate"`

	// TermMonths is the issue term
	TermMonths int `db:"term_months" json:"termMonths"`

	// TotalUnits is the number of units issued
	TotalUnits int `db:"total_units" json:"totalUnits"`

	// SoldUnits counts units sold so far, reset on duplication
	SoldUnits int `db:"sold_units" json:"soldUnits"`

	// MaturityDate is set when the issue is activated
	MaturityDate *time.Time `db:"maturity_date" json:"maturityDate,omitempty"`

	ApprovedAt         *time.Time `db:"approved_at" json:"approvedAt,omitempty"`
	ApprovedBy         *string    `db:"approved_by" json:"approvedBy,omitempty"`
	RejectionReason    *string    `db:"rejection_reason" json:"rejectionReason,omitempty"`
	ActivatedAt        *time.Time `db:"activated_at" json:"activatedAt,omitempty"`
	MaturedAt          *time.Time `db:"matured_at" json:"maturedAt,omitempty"`
	CancelledAt        *time.Time `db:"cancelled_at" json:"cancelledAt,omitempty"`
	CancellationReason *string    `db:"cancellation_reason" json:"cancellationReason,omitempty"`
}

// New creates a draft bond issue.
func New(code, name string, bType BondType) *Bond {
	return &Bond{
		Resource: entity.NewResource(StatusDraft),
		Code:     code,
		Name:     name,
		Type:     bType,
	}
}

// Validate implements entity.Validatable.
func (b *Bond) Validate(ctx context.Context) error {
	if b.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	switch b.Type {
	case TypeFixedRate, TypeVariableRate, TypeZeroCoupon:
	default:
		return apperror.NewValidation("unknown bond type").
			WithDetail("field", "type")
	}

	if !b.FaceValue.IsPositive() {
		return apperror.NewValidation("face value must be positive").
			WithDetail("field", "faceValue")
	}

	if b.InterestRate.IsNegative() {
		return apperror.NewValidation("interest rate must not be negative").
			WithDetail("field", "interestRate")
	}

	if b.TermMonths <= 0 {
		return apperror.NewValidation("term must be at least one month").
			WithDetail("field", "termMonths")
	}

	if b.TotalUnits <= 0 {
		return apperror.NewValidation("total units must be positive").
			WithDetail("field", "totalUnits")
	}

	return nil
}

// Types returns the closed set of bond types.
func Types() []BondType {
	return []BondType{TypeFixedRate, TypeVariableRate, TypeZeroCoupon}
}

// QueryConfig declares the bond list-query surface.
func QueryConfig() query.Config {
	return query.Config{
		Entity:       "bond",
		FilterFields: []string{"type", "status"},
		RangeFields:  []string{"face_value", "interest_rate", "term_months", "created_at"},
		SearchFields: []string{"name", "code"},
		SortFields:   []string{"name", "code", "face_value", "interest_rate", "term_months", "status", "created_at"},
		DefaultSort:  query.Sort{Field: "created_at", Desc: true},
		GroupFields:  []string{"status", "type"},
		Aggregates: []query.Aggregate{
			{Field: "face_value", Op: query.OpSum},
			{Field: "interest_rate", Op: query.OpAvg},
		},
	}
}

// Transitions declares the bond status machine.
func Transitions() *transition.Table {
	return &transition.Table{
		Entity:  "bond",
		Initial: StatusDraft,
		Rules: map[string]transition.Rule{
			"approve": {
				From: []string{StatusDraft},
				To:   StatusApproved,
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					return map[string]any{
						"approved_at":      req.Now,
						"approved_by":      req.Actor,
						"rejection_reason": nil,
					}
				},
			},
			"reject": {
				From:           []string{StatusDraft},
				To:             StatusRejected,
				RequiredFields: []string{"rejection_reason"},
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					return map[string]any{
						"rejection_reason": req.GetString("rejection_reason"),
					}
				},
			},
			"activate": {
				From: []string{StatusApproved},
				To:   StatusActive,
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					fields := map[string]any{
						"activated_at": req.Now,
					}
					if b, ok := e.(*Bond); ok {
						fields["maturity_date"] = req.Now.AddDate(0, b.TermMonths, 0)
					}
					return fields
				},
			},
			"mature": {
				From: []string{StatusActive},
				To:   StatusMatured,
				Check: func(e entity.StatusHolder, req transition.Request) error {
					b, ok := e.(*Bond)
					if !ok || b.MaturityDate == nil {
						return nil
					}
					if req.Now.Before(*b.MaturityDate) {
						return apperror.NewBusinessRule("bond cannot mature before its maturity date").
							WithDetail("maturity_date", b.MaturityDate.Format(time.RFC3339))
					}
					return nil
				},
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					return map[string]any{
						"matured_at": req.Now,
					}
				},
			},
			"cancel": {
				From:           []string{StatusDraft, StatusApproved, StatusActive},
				To:             StatusCancelled,
				RequiredFields: []string{"cancellation_reason"},
				Check: func(e entity.StatusHolder, req transition.Request) error {
					if b, ok := e.(*Bond); ok && b.SoldUnits > 0 {
						return apperror.NewBusinessRule("bond with sold units cannot be cancelled").
							WithDetail("sold_units", b.SoldUnits)
					}
					return nil
				},
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					return map[string]any{
						"cancelled_at":        req.Now,
						"cancellation_reason": req.GetString("cancellation_reason"),
					}
				},
			},
		},
	}
}

// Clone copies a bond issue under a new code: fresh identity, draft
// status, sales counter zeroed, approval trail dropped.
func Clone(src *Bond, newCode string) *Bond {
	dup := New(newCode, src.Name, src.Type)
	dup.FaceValue = src.FaceValue
	dup.InterestRate = src.InterestRate
	dup.TermMonths = src.TermMonths
	dup.TotalUnits = src.TotalUnits
	return dup
}
