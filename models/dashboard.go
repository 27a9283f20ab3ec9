package models

import (
	"context"
	"sort"

	"github.com/ekthaa/khata_backend/utils"
	"github.com/shopspring/decimal"
)

type DashboardBusiness struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	AccessPin string `json:"access_pin"`
}

type DashboardSummary struct {
	TotalCustomers        int                   `json:"total_customers"`
	TotalCredit           decimal.Decimal       `json:"total_credit"`
	TotalPayment          decimal.Decimal       `json:"total_payment"`
	OutstandingBalance    decimal.Decimal       `json:"outstanding_balance"`
	PendingCustomersCount int                   `json:"pending_customers_count"`
	RecentCustomers       []CustomerWithBalance `json:"recent_customers"`
}

type Dashboard struct {
	Business           DashboardBusiness         `json:"business"`
	Summary            DashboardSummary          `json:"summary"`
	RecentTransactions []TransactionWithCustomer `json:"recent_transactions"`
	PendingCustomers   []CustomerWithBalance     `json:"pending_customers"`
}

// GetDashboard aggregates the landing-screen view. All figures are folded
// from the complete transaction log, never from a capped window.
func GetDashboard(ctx context.Context) (*Dashboard, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.NewUnauthenticatedError("business id missing from token")
	}
	business, err := GetBusiness(ctx)
	if err != nil {
		return nil, err
	}

	customers, err := ListCustomers(ctx)
	if err != nil {
		return nil, err
	}

	recentTransactions, err := ListTransactions(ctx, 10)
	if err != nil {
		return nil, err
	}

	totalCredit := decimal.Zero
	totalPayment := decimal.Zero
	pending := make([]CustomerWithBalance, 0)
	balances, err := CustomerBalances(ctx)
	if err != nil {
		return nil, err
	}
	for _, summary := range balances {
		totalCredit = totalCredit.Add(summary.TotalCredit)
		totalPayment = totalPayment.Add(summary.TotalPayment)
	}
	for _, c := range customers {
		if c.Balance.IsPositive() {
			pending = append(pending, c)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].Balance.GreaterThan(pending[j].Balance)
	})
	pendingCount := len(pending)
	if len(pending) > 5 {
		pending = pending[:5]
	}

	recentCustomers := customers
	if len(recentCustomers) > 4 {
		recentCustomers = recentCustomers[:4]
	}

	return &Dashboard{
		Business: DashboardBusiness{
			Id:        business.ID.String(),
			Name:      business.Name,
			Phone:     business.Phone,
			AccessPin: business.AccessPin,
		},
		Summary: DashboardSummary{
			TotalCustomers:        len(customers),
			TotalCredit:           totalCredit,
			TotalPayment:          totalPayment,
			OutstandingBalance:    totalCredit.Sub(totalPayment),
			PendingCustomersCount: pendingCount,
			RecentCustomers:       recentCustomers,
		},
		RecentTransactions: recentTransactions,
		PendingCustomers:   pending,
	}, nil
}
