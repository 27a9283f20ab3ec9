package models

import (
	"context"
	"errors"

	"github.com/ekthaa/khata_backend/config"
	"github.com/ekthaa/khata_backend/utils"
	"github.com/shopspring/decimal"
)

// BalanceSummary is the result of folding a customer's full transaction log.
// Balance = sum(credit) - sum(payment); positive means the customer owes the
// business, negative means an advance. The figure is never clamped.
type BalanceSummary struct {
	Balance          decimal.Decimal `json:"balance"`
	TotalCredit      decimal.Decimal `json:"total_credit"`
	TotalPayment     decimal.Decimal `json:"total_payment"`
	TransactionCount int             `json:"transaction_count"`
	SkippedRecords   int             `json:"-"`
}

// SummarizeTransactions folds a transaction log into a balance. Rows with an
// unknown type or a non-positive amount are excluded from the fold and
// counted in SkippedRecords; a corrupt row must never poison the whole
// balance or crash the request.
func SummarizeTransactions(transactions []Transaction) BalanceSummary {
	summary := BalanceSummary{
		Balance:      decimal.Zero,
		TotalCredit:  decimal.Zero,
		TotalPayment: decimal.Zero,
	}
	for _, t := range transactions {
		if !t.Type.IsValid() || !t.Amount.IsPositive() {
			summary.SkippedRecords++
			continue
		}
		switch t.Type {
		case TransactionTypeCredit:
			summary.TotalCredit = summary.TotalCredit.Add(t.Amount)
			summary.Balance = summary.Balance.Add(t.Amount)
		case TransactionTypePayment:
			summary.TotalPayment = summary.TotalPayment.Add(t.Amount)
			summary.Balance = summary.Balance.Sub(t.Amount)
		}
		summary.TransactionCount++
	}
	return summary
}

// reportSkipped surfaces excluded ledger rows in the logs so drift gets
// investigated instead of silently absorbed.
func reportSkipped(module, funcName string, summary BalanceSummary) {
	if summary.SkippedRecords == 0 {
		return
	}
	config.LogDataIntegrity(config.GetLogger(), module, funcName,
		map[string]interface{}{"skipped_records": summary.SkippedRecords},
		errors.New("excluded malformed ledger rows from balance fold"))
}

// CustomerBalance computes one customer's balance from the authoritative log.
func CustomerBalance(ctx context.Context, customerId string) (BalanceSummary, error) {
	transactions, err := ListCustomerTransactions(ctx, customerId)
	if err != nil {
		return BalanceSummary{}, err
	}
	summary := SummarizeTransactions(transactions)
	reportSkipped("balance.go", "CustomerBalance", summary)
	return summary, nil
}

// CustomerBalances computes every customer's balance for the acting business
// in one pass over the full log, keyed by customer id.
func CustomerBalances(ctx context.Context) (map[string]BalanceSummary, error) {
	db := config.GetDB()

	var transactions []Transaction
	if err := db.WithContext(ctx).
		Order("created_at ASC").
		Find(&transactions).Error; err != nil {
		return nil, utils.NewUpstreamError("failed to load transaction log", err)
	}

	byCustomer := make(map[string][]Transaction)
	for _, t := range transactions {
		key := t.CustomerId.String()
		byCustomer[key] = append(byCustomer[key], t)
	}

	balances := make(map[string]BalanceSummary, len(byCustomer))
	for customerId, log := range byCustomer {
		summary := SummarizeTransactions(log)
		reportSkipped("balance.go", "CustomerBalances", summary)
		balances[customerId] = summary
	}
	return balances, nil
}
