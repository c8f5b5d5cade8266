// Package saleorder provides the SaleOrder resource: customer orders for
// bond units and participation shares.
package saleorder

import (
	"context"
	"time"

	"enercore/internal/core/apperror"
	"enercore/internal/core/entity"
	"enercore/internal/core/id"
	"enercore/internal/core/types"
	"enercore/internal/domain/query"
	"enercore/internal/domain/transition"
)

// MinOrderTotal is the smallest order total the cooperative accepts.
var MinOrderTotal = types.MustMoney("50")

// SaleOrder statuses.
const (
	StatusDraft      = "draft"
	StatusConfirmed  = "confirmed"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// SaleOrder represents a customer order.
type SaleOrder struct {
	entity.Resource

	Number string `db:"number" json:"number"`

	CustomerName  string `db:"customer_name" json:"customerName"`
	CustomerEmail string `db:"customer_email" json:"customerEmail"`

	// BondID references the bond issue being ordered
	BondID *id.ID `db:"bond_id" json:"bondId,omitempty"`

	// AffiliateID references the referring affiliate, if any
	AffiliateID *id.ID `db:"affiliate_id" json:"affiliateId,omitempty"`

	Units       int         `db:"units" json:"units"`
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	ConfirmedAt        *time.Time `db:"confirmed_at" json:"confirmedAt,omitempty"`
	ProcessingAt       *time.Time `db:"processing_at" json:"processingAt,omitempty"`
	CompletedAt        *time.Time `db:"completed_at" json:"completedAt,omitempty"`
	CompletedBy        *string    `db:"completed_by" json:"completedBy,omitempty"`
	CancelledAt        *time.Time `db:"cancelled_at" json:"cancelledAt,omitempty"`
	CancellationReason *string    `db:"cancellation_reason" json:"cancellationReason,omitempty"`
}

// New creates a draft sale order.
func New(number, customerName string, units int, totalAmount types.Money) *SaleOrder {
	return &SaleOrder{
		Resource:     entity.NewResource(StatusDraft),
		Number:       number,
		CustomerName: customerName,
		Units:        units,
		TotalAmount:  totalAmount,
	}
}

// Validate implements entity.Validatable.
func (o *SaleOrder) Validate(ctx context.Context) error {
	if o.CustomerName == "" {
		return apperror.NewValidation("customer name is required").
			WithDetail("field", "customerName")
	}

	if o.Units <= 0 {
		return apperror.NewValidation("units must be positive").
			WithDetail("field", "units")
	}

	if o.TotalAmount.IsNegative() {
		return apperror.NewValidation("total amount must not be negative").
			WithDetail("field", "totalAmount")
	}

	return nil
}

// QueryConfig declares the sale order list-query surface.
func QueryConfig() query.Config {
	return query.Config{
		Entity:       "sale_order",
		FilterFields: []string{"status", "bond_id", "affiliate_id"},
		RangeFields:  []string{"total_amount", "units", "created_at", "completed_at"},
		SearchFields: []string{"number", "customer_name", "customer_email"},
		SortFields:   []string{"number", "customer_name", "total_amount", "units", "status", "created_at"},
		DefaultSort:  query.Sort{Field: "created_at", Desc: true},
		GroupFields:  []string{"status"},
		Aggregates: []query.Aggregate{
			{Field: "total_amount", Op: query.OpSum},
			{Field: "total_amount", Op: query.OpAvg},
		},
	}
}

// Transitions declares the sale order status machine.
func Transitions() *transition.Table {
	return &transition.Table{
		Entity:  "sale_order",
		Initial: StatusDraft,
		Rules: map[string]transition.Rule{
			"confirm": {
				From: []string{StatusDraft},
				To:   StatusConfirmed,
				Check: func(e entity.StatusHolder, req transition.Request) error {
					if o, ok := e.(*SaleOrder); ok && o.TotalAmount.LessThan(MinOrderTotal) {
						return apperror.NewBusinessRule("order total is below the minimum").
							WithDetail("minimum", MinOrderTotal.String()).
							WithDetail("total", o.TotalAmount.String())
					}
					return nil
				},
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					return map[string]any{
						"confirmed_at": req.Now,
					}
				},
			},
			"process": {
				From: []string{StatusConfirmed},
				To:   StatusProcessing,
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					return map[string]any{
						"processing_at": req.Now,
					}
				},
			},
			"complete": {
				From: []string{StatusProcessing},
				To:   StatusCompleted,
				Assign: func(e entity.StatusHolder, req transition.Request) map[string]any {
					return map[string]any{
						"completed_at": req.Now,
						"completed_by": req.Actor,
					}
				},
			},
			"cancel": {
				From:           []string{StatusDraft, StatusConfirmed, StatusProcessing},
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

// Clone copies a sale order under a new number: fresh identity, draft
// status, fulfilment trail dropped.
func Clone(src *SaleOrder, newNumber string) *SaleOrder {
	dup := New(newNumber, src.CustomerName, src.Units, src.TotalAmount)
	dup.CustomerEmail = src.CustomerEmail
	dup.BondID = src.BondID
	dup.AffiliateID = src.AffiliateID
	return dup
}
