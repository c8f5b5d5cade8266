package transition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enercore/internal/core/apperror"
	"enercore/internal/core/entity"
)

type stubEntity struct {
	status string
	amount float64
}

func (s *stubEntity) CurrentStatus() string { return s.status }

func paymentTable() *Table {
	return &Table{
		Entity:  "payment",
		Initial: "pending",
		Rules: map[string]Rule{
			"approve": {
				From: []string{"pending"},
				To:   "approved",
				Assign: func(e entity.StatusHolder, req Request) map[string]any {
					return map[string]any{
						"approved_by": req.Actor,
						"approved_at": req.Now,
					}
				},
			},
			"reject": {
				From:           []string{"pending"},
				To:             "rejected",
				RequiredFields: []string{"rejection_reason"},
				Assign: func(e entity.StatusHolder, req Request) map[string]any {
					return map[string]any{
						"rejection_reason": req.GetString("rejection_reason"),
						"rejected_at":      req.Now,
					}
				},
			},
			"refund": {
				From:           []string{"approved"},
				To:             "refunded",
				RequiredFields: []string{"refund_reason"},
				Check: func(e entity.StatusHolder, req Request) error {
					amount, ok := req.GetFloat("refund_amount")
					if !ok || amount <= 0 {
						return apperror.NewInvalidPayload("refund", "refund_amount", "refund_amount must be a positive number")
					}
					if amount > e.(*stubEntity).amount {
						return apperror.NewBusinessRule("refund amount exceeds the original amount").
							WithDetail("field", "refund_amount")
					}
					return nil
				},
				Assign: func(e entity.StatusHolder, req Request) map[string]any {
					amount, _ := req.GetFloat("refund_amount")
					return map[string]any{
						"refund_amount": amount,
						"refund_reason": req.GetString("refund_reason"),
					}
				},
			},
		},
	}
}

func TestAttempt_Success(t *testing.T) {
	table := paymentTable()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	res, err := table.Attempt(&stubEntity{status: "pending"}, Request{
		Action: "approve",
		Actor:  "user-1",
		Now:    now,
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", res.From)
	assert.Equal(t, "approved", res.To)
	assert.Equal(t, "approved", res.Fields["status"])
	assert.Equal(t, "user-1", res.Fields["approved_by"])
	assert.Equal(t, now, res.Fields["approved_at"])
}

func TestAttempt_DefaultsClockBeforeCheck(t *testing.T) {
	var checkedNow time.Time
	table := &Table{
		Entity:  "job",
		Initial: "queued",
		Rules: map[string]Rule{
			"expire": {
				From: []string{"queued"},
				To:   "expired",
				Check: func(e entity.StatusHolder, req Request) error {
					checkedNow = req.Now
					if req.Now.IsZero() {
						return apperror.NewBusinessRule("clock not set")
					}
					return nil
				},
				Assign: func(e entity.StatusHolder, req Request) map[string]any {
					return map[string]any{"expired_at": req.Now}
				},
			},
		},
	}

	res, err := table.Attempt(&stubEntity{status: "queued"}, Request{Action: "expire"})
	require.NoError(t, err)

	assert.False(t, checkedNow.IsZero())
	assert.Equal(t, checkedNow, res.Fields["expired_at"])
}

func TestAttempt_IllegalSourceState(t *testing.T) {
	table := paymentTable()

	// approve is only legal from pending: an already-approved entity must
	// fail rather than silently succeed a second time.
	_, err := table.Attempt(&stubEntity{status: "approved"}, Request{Action: "approve"})
	require.Error(t, err)
	assert.True(t, apperror.IsIllegalTransition(err))

	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, "approved", appErr.Details["current_status"])
	assert.Equal(t, "approve", appErr.Details["action"])
}

func TestAttempt_UnknownAction(t *testing.T) {
	table := paymentTable()

	_, err := table.Attempt(&stubEntity{status: "pending"}, Request{Action: "explode"})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestAttempt_MissingRequiredPayload(t *testing.T) {
	table := paymentTable()

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"nil payload", nil},
		{"absent field", map[string]any{"other": "x"}},
		{"empty string", map[string]any{"rejection_reason": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := table.Attempt(&stubEntity{status: "pending"}, Request{
				Action:  "reject",
				Payload: tt.payload,
			})
			require.Error(t, err)
			assert.True(t, apperror.IsInvalidPayload(err))
		})
	}
}

func TestAttempt_BusinessRuleBound(t *testing.T) {
	table := paymentTable()
	e := &stubEntity{status: "approved", amount: 100}

	_, err := table.Attempt(e, Request{
		Action:  "refund",
		Payload: map[string]any{"refund_amount": 150.0, "refund_reason": "overcharge"},
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBusinessRule, appErr.Code)
	assert.Equal(t, "refund_amount", appErr.Details["field"])

	// Within bound succeeds.
	res, err := table.Attempt(e, Request{
		Action:  "refund",
		Payload: map[string]any{"refund_amount": 80.0, "refund_reason": "overcharge"},
	})
	require.NoError(t, err)
	assert.Equal(t, 80.0, res.Fields["refund_amount"])
}

func TestTable_StatesActionsTerminal(t *testing.T) {
	table := paymentTable()

	assert.Equal(t, []string{"approve", "reject", "refund"}, table.Actions())
	assert.Equal(t, []string{"approved", "pending", "refunded", "rejected"}, table.States())
	assert.Equal(t, []string{"refunded", "rejected"}, table.Terminal())

	assert.True(t, table.CanApply("pending", "approve"))
	assert.False(t, table.CanApply("rejected", "approve"))
}
