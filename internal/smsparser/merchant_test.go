package smsparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMerchant(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantFound bool
	}{
		{name: "at with on terminator", input: "Rs.500 debited at AMAZON on 09-01-26", want: "AMAZON", wantFound: true},
		{name: "at with period", input: "debited for Rs.500.00 on 09-01-26 at AMAZON. Avl Bal Rs.10", want: "AMAZON", wantFound: true},
		{name: "to with via terminator", input: "Paid to Zomato via UPI", want: "Zomato", wantFound: true},
		{name: "to with ref terminator", input: "Payment of Rs.500 to Ravi Kumar ref 12345", want: "Ravi Kumar", wantFound: true},
		{name: "multi word at end of text", input: "$1,500.00 transferred from your account to John Doe", want: "John Doe", wantFound: true},
		{name: "special characters", input: "spent $40 at Barnes & Noble's on Friday", want: "Barnes & Noble's", wantFound: true},
		{name: "dated terminator", input: "Purchase at Big Bazaar dated 05-Jan", want: "Big Bazaar", wantFound: true},
		{name: "stopword falls through to paid template", input: "paid Ravi via UPI", want: "Ravi", wantFound: true},
		{name: "transaction at", input: "transaction at Croma for Rs.200", want: "Croma", wantFound: true},
		{name: "atm is rejected", input: "Rs.2000 withdrawn at ATM on 01-02-26", wantFound: false},
		{name: "too short", input: "spent $5 at AB.", wantFound: false},
		{name: "lowercase capture is not a merchant", input: "spent $5 at the shop", wantFound: false},
		{name: "no preposition", input: "Your balance is Rs.500", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractMerchant(tt.input)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAcceptMerchant(t *testing.T) {
	_, ok := acceptMerchant("  UPI ")
	assert.False(t, ok)

	_, ok = acceptMerchant("The")
	assert.False(t, ok)

	_, ok = acceptMerchant("ABCDEFGHIJKLMNOPQRSTUVWXYZABCDEFGHIJKLMNOPQRSTUVWX")
	assert.False(t, ok, "50 characters is too long")

	got, ok := acceptMerchant(" KFC ")
	assert.True(t, ok)
	assert.Equal(t, "KFC", got)
}
