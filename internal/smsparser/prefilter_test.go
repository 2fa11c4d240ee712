package smsparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTransactionSMS(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "bank debit", input: "Your A/c X1234 is debited for Rs.500.00 on 09-01-26 at AMAZON", want: true},
		{name: "income keyword", input: "$200 received from John", want: true},
		{name: "account keyword only", input: "Avl Bal Rs.10,000.00", want: true},
		{name: "fullwidth digits", input: "Ｒｓ.５００ debited", want: true},
		{name: "amount without context", input: "Rs.500 is waiting for you", want: false},
		{name: "otp", input: "Your OTP is 123456. Do not share it", want: false},
		{name: "keyword without amount", input: "Your payment is due soon", want: false},
		{name: "empty", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransactionSMS(tt.input))
		})
	}
}
