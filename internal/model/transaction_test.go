package model

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
)

func TestTransactionUndated(t *testing.T) {
	assert.True(t, Transaction{}.Undated())
	assert.False(t, Transaction{Date: civil.Date{Year: 2022, Month: time.April, Day: 1}}.Undated())
}

func TestTransactionInMonth(t *testing.T) {
	txn := Transaction{Date: civil.Date{Year: 2022, Month: time.April, Day: 30}}

	tests := []struct {
		month time.Month
		year  int
		want  bool
	}{
		{time.April, 2022, true},
		{time.May, 2022, false},
		{time.April, 2023, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, txn.InMonth(tt.month, tt.year), "%s %d", tt.month, tt.year)
	}

	assert.False(t, Transaction{}.InMonth(time.January, 0))
}
