package bond

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enercore/internal/core/apperror"
	"enercore/internal/core/types"
	"enercore/internal/domain/transition"
)

func validBond() *Bond {
	b := New("BND-000001", "Solar Park Series A", TypeFixedRate)
	b.FaceValue = types.MustMoney("250")
	b.InterestRate = types.NewRate(4.2)
	b.TermMonths = 60
	b.TotalUnits = 4000
	return b
}

func TestValidate(t *testing.T) {
	require.NoError(t, validBond().Validate(context.Background()))

	b := validBond()
	b.TermMonths = 0
	err := b.Validate(context.Background())
	require.Error(t, err)
	assert.Equal(t, "termMonths", err.(*apperror.AppError).Details["field"])
}

func TestActivateComputesMaturityDate(t *testing.T) {
	b := validBond()
	b.Status = StatusApproved

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	res, err := Transitions().Attempt(b, transition.Request{
		Action: "activate",
		Actor:  "carol",
		Now:    now,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusActive, res.To)
	assert.Equal(t, now.AddDate(0, 60, 0), res.Fields["maturity_date"])
}

func TestMatureBeforeMaturityDateRejected(t *testing.T) {
	b := validBond()
	b.Status = StatusActive
	maturity := time.Date(2031, 3, 1, 0, 0, 0, 0, time.UTC)
	b.MaturityDate = &maturity

	_, err := Transitions().Attempt(b, transition.Request{
		Action: "mature",
		Now:    maturity.AddDate(0, -1, 0),
	})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeBusinessRule, err.(*apperror.AppError).Code)

	res, err := Transitions().Attempt(b, transition.Request{
		Action: "mature",
		Now:    maturity.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusMatured, res.To)
}

func TestMatureWithDefaultedClock(t *testing.T) {
	b := validBond()
	b.Status = StatusActive
	maturity := time.Now().UTC().AddDate(-1, 0, 0)
	b.MaturityDate = &maturity

	// No Now in the request, as when the service builds it from an API call.
	res, err := Transitions().Attempt(b, transition.Request{Action: "mature"})
	require.NoError(t, err)

	assert.Equal(t, StatusMatured, res.To)
	maturedAt, ok := res.Fields["matured_at"].(time.Time)
	require.True(t, ok)
	assert.False(t, maturedAt.IsZero())
}

func TestCancelWithSoldUnitsRejected(t *testing.T) {
	b := validBond()
	b.Status = StatusActive
	b.SoldUnits = 17

	_, err := Transitions().Attempt(b, transition.Request{
		Action:  "cancel",
		Payload: map[string]any{"cancellation_reason": "undersubscribed"},
		Now:     time.Now(),
	})
	require.Error(t, err)

	appErr := err.(*apperror.AppError)
	assert.Equal(t, apperror.CodeBusinessRule, appErr.Code)
	assert.Equal(t, 17, appErr.Details["sold_units"])
}

func TestRejectRequiresReason(t *testing.T) {
	b := validBond()

	_, err := Transitions().Attempt(b, transition.Request{Action: "reject", Now: time.Now()})
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidPayload(err))

	res, err := Transitions().Attempt(b, transition.Request{
		Action:  "reject",
		Payload: map[string]any{"rejection_reason": "rate out of policy"},
		Now:     time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, res.To)
	assert.Equal(t, "rate out of policy", res.Fields["rejection_reason"])
}

func TestCloneResetsSalesAndApproval(t *testing.T) {
	src := validBond()
	src.Status = StatusActive
	src.SoldUnits = 300
	now := time.Now()
	src.ApprovedAt = &now

	dup := Clone(src, "BND-000002")

	assert.Equal(t, "BND-000002", dup.Code)
	assert.Equal(t, StatusDraft, dup.Status)
	assert.Zero(t, dup.SoldUnits)
	assert.Nil(t, dup.ApprovedAt)
	assert.Equal(t, src.TotalUnits, dup.TotalUnits)
	assert.NotEqual(t, src.ID, dup.ID)
}
