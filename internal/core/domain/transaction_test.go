package domain_test

import (
	"testing"
	"time"

	"github.com/obsbank/obs_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_DisplayID(t *testing.T) {
	tests := []struct {
		name string
		id   int64
		want string
	}{
		{
			name: "small id is zero padded to eight digits",
			id:   1,
			want: "TXN00000001",
		},
		{
			name: "eight digit id keeps all digits",
			id:   12345678,
			want: "TXN12345678",
		},
		{
			name: "wider id is never truncated",
			id:   123456789012,
			want: "TXN123456789012",
		},
		{
			name: "zero id",
			id:   0,
			want: "TXN00000000",
		},
		{
			name: "negative id keeps the sign ahead of the padding",
			id:   -5,
			want: "TXN-0000005",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.Transaction{ID: tt.id}.DisplayID()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransaction_IsTerminal(t *testing.T) {
	tests := []struct {
		name   string
		status domain.TransactionStatus
		want   bool
	}{
		{name: "pending is not terminal", status: domain.StatusPending, want: false},
		{name: "success is terminal", status: domain.StatusSuccess, want: true},
		{name: "rejected is terminal", status: domain.StatusRejected, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.Transaction{Status: tt.status}.IsTerminal()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecurringPayment_Advance(t *testing.T) {
	due := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		frequency domain.Frequency
		want      time.Time
	}{
		{
			name:      "daily advances one day",
			frequency: domain.Daily,
			want:      time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "weekly advances seven days",
			frequency: domain.Weekly,
			want:      time.Date(2025, time.February, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "monthly advances one calendar month with normalization",
			frequency: domain.Monthly,
			want:      time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "unknown frequency leaves the date unchanged",
			frequency: domain.Frequency("FORTNIGHTLY"),
			want:      due,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.RecurringPayment{Frequency: tt.frequency, NextPaymentDate: due}
			assert.Equal(t, tt.want, p.Advance())
		})
	}
}
