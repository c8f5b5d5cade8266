// Package donation provides the Donation resource: one-off and recurring
// contributions made to the cooperative's campaigns.
package donation

import (
	"context"
	"time"

	"enercore/internal/core/apperror"
	"enercore/internal/core/entity"
	"enercore/internal/core/types"
	"enercore/internal/domain/query"
	"enercore/internal/domain/transition"
)

// DonationType defines the contribution model.
type DonationType string

const (
	TypeOneTime   DonationType = "one_time"
	TypeRecurring DonationType = "recurring"
	TypeInKind    DonationType = "in_kind"
)

// Donation statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusProcessed = "processed"
	StatusRefunded  = "refunded"
	StatusCancelled = "cancelled"
)

// Donation represents a single contribution.
type Donation struct {
	entity.Resource

	Number string `db:"number" json:"number"`

	DonorName  string `db:"donor_name" json:"donorName"`
	DonorEmail string `db:"donor_email" json:"donorEmail"`

	Type DonationType `db:"type" json:"type"`

	Amount types.Money `db:"amount" json:"amount"`

	// Campaign optionally ties the donation to a fundraising campaign
	Campaign string `db:"campaign" json:"campaign,omitempty"`

	// Anonymous hides the donor name from public listings
	Anonymous bool `db:"anonymous" json:"anonymous"`

	ConfirmedAt        *time.Time   `db:"confirmed_at" json:"confirmedAt,omitempty"`
	ProcessedAt        *time.Time   `db:"processed_at" json:"processedAt,omitempty"`
	ProcessedBy        *string      `db:"processed_by" json:"processedBy,omitempty"`
	RefundedAt         *time.Time   `db:"refunded_at" json:"refundedAt,omitempty"`
	RefundAmount       *types.Money `db:"refund_amount" json:"refundAmount,omitempty"`
	RefundReason       *string      `db:"refund_reason" json:"refundReason,omitempty"`
	CancelledAt        *time.Time   `db:"cancelled_at" json:"cancelledAt,omitempty"`
	CancellationReason *string      `db:"cancellation_reason" json:"cancellationReason,omitempty"`
}

// New creates a pending donation.
func New(number, donorName string, dType DonationType, amount types.Money) *Donation {
	return &Donation{
		Resource:  entity.NewResource(StatusPending),
		Number:    number,
		DonorName: donorName,
		Type:      dType,
		Amount:    amount,
	}
}

// Validate implements entity.Validatable.
func (d *Donation) Validate(ctx context.Context) error {
	if d.DonorName == "" {
		return apperror.NewValidation("donor name is required").
			WithDetail("field", "donorName")
	}

	switch d.Type {
	case TypeOneTime, TypeRecurring, TypeInKind:
	default:
		return apperror.NewValidation("unknown donation type").
			WithDetail("field", "type")
	}

	if !d.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}

	return nil
}

// Types returns the closed set of donation types.
func Types() []DonationType {
	return []DonationType{TypeOneTime, TypeRecurring, TypeInKind}
}

// QueryConfig declares the donation list-query surface.
func QueryConfig() query.Config {
	return query.Config{
		Entity:       "donation",
		FilterFields: []string{"type", "status", "campaign"},
		RangeFields:  []string{"amount", "created_at", "confirmed_at"},
		BoolFields:   []string{"anonymous"},
		SearchFields: []string{"donor_name", "donor_email", "number"},
		SortFields:   []string{"number", "donor_name", "amount", "status", "created_at"},
		DefaultSort:  query.Sort{Field: "created_at", Desc: true},
		// Donation lists are kept small for the public dashboard.
		MaxPerPage:  50,
		GroupFields: []string{"status", "type", "campaign"},
		Aggregates: []query.Aggregate{
			{Field: "amount", Op: query.OpSum},
			{Field: "amount", Op: query.OpAvg},
		},
	}
}

// Transitions declares the donation status machine.
func Transitions() *transition.Table {
	return &transition.Table{
		Entity:  "donation",
		Initial: StatusPending,
		Rules: map[string]transition.Rule{
			"confirm": {
				From: []string{StatusPending},
				To:   StatusConfirmed,
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					return map[string]any{
						"confirmed_at": req.Now,
					}
				},
			},
			"process": {
				From: []string{StatusConfirmed},
				To:   StatusProcessed,
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					return map[string]any{
						"processed_at": req.Now,
						"processed_by": req.Actor,
					}
				},
			},
			"refund": {
				From:           []string{StatusProcessed},
				To:             StatusRefunded,
				RequiredFields: []string{"refund_amount", "refund_reason"},
				Check: func(e entity.StatusHolder, req transition.Request) error {
					amount, ok := req.GetFloat("refund_amount")
					if !ok {
						return apperror.NewInvalidPayload("refund", "refund_amount", "must be a number")
					}
					if amount <= 0 {
						return apperror.NewBusinessRule("refund amount must be positive").
							WithDetail("field", "refund_amount")
					}
					if d, ok := e.(*Donation); ok {
						if types.NewMoney(amount).GreaterThan(d.Amount) {
							return apperror.NewBusinessRule("refund amount exceeds the donation amount").
								WithDetail("field", "refund_amount").
								WithDetail("donation_amount", d.Amount.InexactFloat64())
						}
					}
					return nil
				},
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					amount, _ := req.GetFloat("refund_amount")
					return map[string]any{
						"refunded_at":   req.Now,
						"refund_amount": amount,
						"refund_reason": req.GetString("refund_reason"),
					}
				},
			},
			"cancel": {
				From:           []string{StatusPending, StatusConfirmed},
				To:             StatusCancelled,
				RequiredFields: []string{"cancellation_reason"},
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

// Clone copies a donation under a new number: fresh identity, pending
// status, processing and refund trails dropped.
func Clone(src *Donation, newNumber string) *Donation {
	dup := New(newNumber, src.DonorName, src.Type, src.Amount)
	dup.DonorEmail = src.DonorEmail
	dup.Campaign = src.Campaign
	dup.Anonymous = src.Anonymous
	return dup
}
