package models

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

func credit(amount string) Transaction {
	return Transaction{Type: TransactionTypeCredit, Amount: mustDecimal(amount)}
}

func payment(amount string) Transaction {
	return Transaction{Type: TransactionTypePayment, Amount: mustDecimal(amount)}
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSummarizeTransactionsBasics(t *testing.T) {
	cases := []struct {
		name         string
		transactions []Transaction
		wantBalance  string
		wantCredit   string
		wantPayment  string
		wantCount    int
	}{
		{"empty log", nil, "0", "0", "0", 0},
		{"single credit", []Transaction{credit("500")}, "500", "500", "0", 1},
		{"credit and payment", []Transaction{credit("500"), payment("300")}, "200", "500", "300", 2},
		{"overpayment goes negative", []Transaction{credit("100"), payment("250")}, "-150", "100", "250", 2},
		{"settled", []Transaction{credit("150"), payment("150")}, "0", "150", "150", 2},
		{"fractional paise", []Transaction{credit("250.50"), credit("0.01"), payment("100.26")}, "150.25", "250.51", "100.26", 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SummarizeTransactions(tc.transactions)
			if !got.Balance.Equal(mustDecimal(tc.wantBalance)) {
				t.Errorf("balance = %s, want %s", got.Balance, tc.wantBalance)
			}
			if !got.TotalCredit.Equal(mustDecimal(tc.wantCredit)) {
				t.Errorf("total credit = %s, want %s", got.TotalCredit, tc.wantCredit)
			}
			if !got.TotalPayment.Equal(mustDecimal(tc.wantPayment)) {
				t.Errorf("total payment = %s, want %s", got.TotalPayment, tc.wantPayment)
			}
			if got.TransactionCount != tc.wantCount {
				t.Errorf("count = %d, want %d", got.TransactionCount, tc.wantCount)
			}
			if got.SkippedRecords != 0 {
				t.Errorf("skipped = %d, want 0", got.SkippedRecords)
			}
		})
	}
}

func TestSummarizeTransactionsOrderIndependent(t *testing.T) {
	log := []Transaction{
		credit("500"), payment("120.50"), credit("75.25"),
		payment("30"), credit("1000"), payment("999.99"),
	}
	want := SummarizeTransactions(log)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]Transaction, len(log))
		copy(shuffled, log)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := SummarizeTransactions(shuffled)
		if !got.Balance.Equal(want.Balance) || got.TransactionCount != want.TransactionCount {
			t.Fatalf("shuffle %d: balance %s (count %d), want %s (count %d)",
				i, got.Balance, got.TransactionCount, want.Balance, want.TransactionCount)
		}
	}
}

func TestSummarizeTransactionsIdempotent(t *testing.T) {
	log := []Transaction{credit("10"), payment("4")}
	first := SummarizeTransactions(log)
	second := SummarizeTransactions(log)
	if !first.Balance.Equal(second.Balance) || first.TransactionCount != second.TransactionCount {
		t.Fatalf("repeat fold changed result: %s vs %s", first.Balance, second.Balance)
	}
}

func TestSummarizeTransactionsExcludesMalformedRows(t *testing.T) {
	log := []Transaction{
		credit("500"),
		{Type: TransactionType("refund"), Amount: mustDecimal("999")}, // unknown type
		{Type: TransactionTypeCredit, Amount: mustDecimal("0")},      // non-positive
		{Type: TransactionTypePayment, Amount: mustDecimal("-50")},   // negative
		payment("200"),
	}
	got := SummarizeTransactions(log)

	if !got.Balance.Equal(mustDecimal("300")) {
		t.Errorf("balance = %s, want 300", got.Balance)
	}
	if got.TransactionCount != 2 {
		t.Errorf("count = %d, want 2", got.TransactionCount)
	}
	if got.SkippedRecords != 3 {
		t.Errorf("skipped = %d, want 3", got.SkippedRecords)
	}
}
