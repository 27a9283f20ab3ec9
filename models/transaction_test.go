package models

import (
	"testing"
)

func TestNewTransactionValidate(t *testing.T) {
	cases := []struct {
		name    string
		input   NewTransaction
		wantErr bool
	}{
		{"valid credit", NewTransaction{Type: TransactionTypeCredit, Amount: mustDecimal("100")}, false},
		{"valid payment", NewTransaction{Type: TransactionTypePayment, Amount: mustDecimal("0.01")}, false},
		{"zero amount", NewTransaction{Type: TransactionTypeCredit, Amount: mustDecimal("0")}, true},
		{"negative amount", NewTransaction{Type: TransactionTypePayment, Amount: mustDecimal("-25")}, true},
		{"unknown type", NewTransaction{Type: TransactionType("refund"), Amount: mustDecimal("100")}, true},
		{"empty type", NewTransaction{Amount: mustDecimal("100")}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.input.validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestTransactionTypeIsValid(t *testing.T) {
	if !TransactionTypeCredit.IsValid() || !TransactionTypePayment.IsValid() {
		t.Error("credit and payment must be valid")
	}
	for _, bad := range []TransactionType{"", "CREDIT", "refund", "Credit"} {
		if bad.IsValid() {
			t.Errorf("%q should not be valid", bad)
		}
	}
}
