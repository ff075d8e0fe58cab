package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestResolveDisplayStatus(t *testing.T) {
	d := decimal.RequireFromString
	cases := []struct {
		name   string
		amount string
		paid   string
		want   DisplayStatus
	}{
		{"no payments", "150.00", "0", DisplayStatusPending},
		{"partial", "150.00", "100.00", DisplayStatusPartial},
		{"settled", "150.00", "150.00", DisplayStatusPaid},
		{"overpaid", "150.00", "200.00", DisplayStatusPaid},
		{"zero amount", "0", "0", DisplayStatusPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveDisplayStatus(d(tc.amount), d(tc.paid)))
		})
	}
}

func TestFeeBalance(t *testing.T) {
	b := FeeBalance{Amount: decimal.RequireFromString("150.00"), Paid: decimal.RequireFromString("100.00")}
	assert.True(t, b.Balance().Equal(decimal.RequireFromString("50")))
}

func TestEnrollmentStatusValid(t *testing.T) {
	assert.True(t, EnrollmentStatusActive.Valid())
	assert.True(t, EnrollmentStatusCompleted.Valid())
	assert.False(t, EnrollmentStatus("CANCELADO").Valid())
	assert.False(t, EnrollmentStatus("").Valid())
}
