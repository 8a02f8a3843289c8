package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestHistoryFilterValidate(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		filter  HistoryFilter
		wantErr bool
	}{
		{"empty", HistoryFilter{}, false},
		{"debit", HistoryFilter{Type: ptr(TransactionTypeDebit)}, false},
		{"unknown type", HistoryFilter{Type: ptr(TransactionType("REFUND"))}, true},
		{"to before from", HistoryFilter{From: ptr(now), To: ptr(now.Add(-time.Hour))}, true},
		{"bad min", HistoryFilter{MinAmount: ptr("ten")}, true},
		{"min above max", HistoryFilter{MinAmount: ptr("5"), MaxAmount: ptr("1.50")}, true},
		{"range", HistoryFilter{MinAmount: ptr("1"), MaxAmount: ptr("1.00")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHistoryFilterMatch(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entry := Transaction{Type: TransactionTypeCredit, TxID: "abc", Amount: "12.50", Timestamp: ts}

	assert.True(t, (&HistoryFilter{}).Match(entry))
	assert.True(t, (&HistoryFilter{Type: ptr(TransactionTypeCredit)}).Match(entry))
	assert.False(t, (&HistoryFilter{Type: ptr(TransactionTypeDebit)}).Match(entry))
	assert.False(t, (&HistoryFilter{TxID: ptr("other")}).Match(entry))
	assert.True(t, (&HistoryFilter{From: ptr(ts), To: ptr(ts)}).Match(entry))
	assert.False(t, (&HistoryFilter{From: ptr(ts.Add(time.Second))}).Match(entry))
	assert.True(t, (&HistoryFilter{MinAmount: ptr("12.5"), MaxAmount: ptr("12.50")}).Match(entry))
	assert.False(t, (&HistoryFilter{MinAmount: ptr("12.51")}).Match(entry))
	assert.False(t, (&HistoryFilter{MaxAmount: ptr("12.49")}).Match(entry))
}
