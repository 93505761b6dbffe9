package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithdrawalStatusValid(t *testing.T) {
	for _, s := range []WithdrawalStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusFailed, StatusRejected} {
		assert.True(t, s.Valid(), "expected %q to be valid", s)
	}
	for _, s := range []WithdrawalStatus{"", "processing", "PENDING", "cancelled"} {
		assert.False(t, s.Valid(), "expected %q to be invalid", s)
	}
}

func TestWithdrawalStatusTerminal(t *testing.T) {
	// completed, failed and rejected permit no further transitions
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
}

func TestWithdrawalStatusRefundable(t *testing.T) {
	// only failed and rejected return the amount to the balance
	assert.True(t, StatusFailed.Refundable())
	assert.True(t, StatusRejected.Refundable())
	assert.False(t, StatusPending.Refundable())
	assert.False(t, StatusConfirmed.Refundable())
	assert.False(t, StatusCompleted.Refundable())
}
