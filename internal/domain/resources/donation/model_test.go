package donation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enercore/internal/core/apperror"
	"enercore/internal/core/types"
	"enercore/internal/domain/transition"
)

func processedDonation(amount string) *Donation {
	d := New("DON-000001", "Jan de Vries", TypeOneTime, types.MustMoney(amount))
	d.Status = StatusProcessed
	return d
}

func TestRefundRequiresNumericAmount(t *testing.T) {
	d := processedDonation("150")

	_, err := Transitions().Attempt(d, transition.Request{
		Action: "refund",
		Payload: map[string]any{
			"refund_amount": "a lot",
			"refund_reason": "duplicate payment",
		},
		Now: time.Now(),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidPayload(err))
}

func TestRefundBoundedByDonationAmount(t *testing.T) {
	d := processedDonation("150")

	_, err := Transitions().Attempt(d, transition.Request{
		Action: "refund",
		Payload: map[string]any{
			"refund_amount": 200.0,
			"refund_reason": "duplicate payment",
		},
		Now: time.Now(),
	})
	require.Error(t, err)

	appErr := err.(*apperror.AppError)
	assert.Equal(t, apperror.CodeBusinessRule, appErr.Code)
	assert.Equal(t, 150.0, appErr.Details["donation_amount"])
}

func TestRefundHappyPath(t *testing.T) {
	d := processedDonation("150")

	res, err := Transitions().Attempt(d, transition.Request{
		Action: "refund",
		Payload: map[string]any{
			"refund_amount": 150.0,
			"refund_reason": "donor request",
		},
		Now: time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, StatusRefunded, res.To)
	assert.Equal(t, 150.0, res.Fields["refund_amount"])
	assert.Equal(t, "donor request", res.Fields["refund_reason"])
}

func TestRefundExactAmountBoundary(t *testing.T) {
	d := processedDonation("19.99")

	// Refunding the full amount to the cent is allowed.
	res, err := Transitions().Attempt(d, transition.Request{
		Action: "refund",
		Payload: map[string]any{
			"refund_amount": 19.99,
			"refund_reason": "donor request",
		},
		Now: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusRefunded, res.To)

	// One tenth of a cent over is not.
	d = processedDonation("19.99")
	_, err = Transitions().Attempt(d, transition.Request{
		Action: "refund",
		Payload: map[string]any{
			"refund_amount": 19.991,
			"refund_reason": "donor request",
		},
		Now: time.Now(),
	})
	require.Error(t, err)

	appErr := err.(*apperror.AppError)
	assert.Equal(t, apperror.CodeBusinessRule, appErr.Code)
}

func TestRefundFromPendingRejected(t *testing.T) {
	d := New("DON-000002", "Anon", TypeOneTime, types.MustMoney("25"))

	_, err := Transitions().Attempt(d, transition.Request{
		Action: "refund",
		Payload: map[string]any{
			"refund_amount": 10.0,
			"refund_reason": "changed mind",
		},
		Now: time.Now(),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsIllegalTransition(err))
}
