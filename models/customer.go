package models

import (
	"context"
	"errors"
	"time"

	"github.com/ekthaa/khata_backend/config"
	"github.com/ekthaa/khata_backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Customer struct {
	ID         uuid.UUID `gorm:"primary_key" json:"id"`
	BusinessId uuid.UUID `gorm:"index;not null;uniqueIndex:idx_customer_phone" json:"business_id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Phone      string    `gorm:"size:20;not null;uniqueIndex:idx_customer_phone" json:"phone_number"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCustomer struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

type CustomerWithBalance struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Phone            string          `json:"phone_number"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int             `json:"transaction_count"`
}

type CustomerDetails struct {
	Customer     CustomerWithBalance `json:"customer"`
	Transactions []Transaction       `json:"transactions"`
	Summary      BalanceSummary      `json:"summary"`
}

// assertOwns is the single cross-tenant guard for path-id lookups: records
// fetched by raw id must belong to the acting business before being returned
// or mutated. Everything else is scoped automatically by the tenant guard
// plugin in config.
func assertOwns(ctx context.Context, resourceBusinessId uuid.UUID) error {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return utils.NewUnauthenticatedError("business id missing from token")
	}
	if resourceBusinessId.String() != businessId {
		return utils.NewForbiddenError("access denied")
	}
	return nil
}

// GetCustomer fetches by id and verifies ownership.
func GetCustomer(ctx context.Context, id string) (*Customer, error) {
	db := config.GetDB()

	// Fetch unscoped so a cross-tenant id yields Forbidden, not a silent miss.
	fetchCtx := utils.SetSkipTenantScopeInContext(ctx, true)
	var customer Customer
	if err := db.WithContext(fetchCtx).Where("id = ?", id).Take(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("customer not found")
		}
		return nil, utils.NewUpstreamError("failed to fetch customer", err)
	}
	if err := assertOwns(ctx, customer.BusinessId); err != nil {
		return nil, err
	}
	return &customer, nil
}

// CreateCustomer adds a customer to the acting business.
func CreateCustomer(ctx context.Context, input *NewCustomer) (*Customer, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.NewUnauthenticatedError("business id missing from token")
	}

	if input.Name == "" {
		return nil, utils.NewValidationError("name is required")
	}
	if !utils.IsTenDigitPhone(input.Phone) {
		return nil, utils.NewValidationError("phone number must be exactly 10 digits")
	}
	if err := utils.ValidateUnique[Customer](ctx, businessId, "phone", input.Phone, ""); err != nil {
		if utils.KindOf(err) == utils.KindConflict {
			return nil, utils.NewConflictError("customer with this phone number already exists")
		}
		return nil, err
	}

	customer := Customer{
		ID:         uuid.New(),
		BusinessId: uuid.MustParse(businessId),
		Name:       input.Name,
		Phone:      input.Phone,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, utils.NewUpstreamError("failed to create customer", err)
	}
	return &customer, nil
}

// ListCustomers returns every customer of the acting business with the
// balance derived from the full transaction log.
func ListCustomers(ctx context.Context) ([]CustomerWithBalance, error) {
	db := config.GetDB()

	var customers []Customer
	if err := db.WithContext(ctx).Order("created_at DESC").Find(&customers).Error; err != nil {
		return nil, utils.NewUpstreamError("failed to list customers", err)
	}

	balances, err := CustomerBalances(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]CustomerWithBalance, 0, len(customers))
	for _, c := range customers {
		summary := balances[c.ID.String()]
		result = append(result, CustomerWithBalance{
			ID:               c.ID,
			Name:             c.Name,
			Phone:            c.Phone,
			Balance:          summary.Balance,
			TransactionCount: summary.TransactionCount,
		})
	}
	return result, nil
}

// SearchCustomers matches name or phone by substring, scoped to the tenant.
func SearchCustomers(ctx context.Context, query string) ([]Customer, error) {
	if query == "" {
		return nil, utils.NewValidationError("search query is required")
	}
	db := config.GetDB()

	var customers []Customer
	if err := db.WithContext(ctx).
		Where("(name LIKE ? OR phone LIKE ?)", "%"+query+"%", "%"+query+"%").
		Order("name ASC").
		Find(&customers).Error; err != nil {
		return nil, utils.NewUpstreamError("failed to search customers", err)
	}
	return customers, nil
}

// GetCustomerDetails returns the customer, their full transaction history
// (newest first) and the derived balance summary.
func GetCustomerDetails(ctx context.Context, id string) (*CustomerDetails, error) {
	customer, err := GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	transactions, err := ListCustomerTransactions(ctx, customer.ID.String())
	if err != nil {
		return nil, err
	}

	summary := SummarizeTransactions(transactions)
	reportSkipped("customer.go", "GetCustomerDetails", summary)

	return &CustomerDetails{
		Customer: CustomerWithBalance{
			ID:               customer.ID,
			Name:             customer.Name,
			Phone:            customer.Phone,
			Balance:          summary.Balance,
			TransactionCount: summary.TransactionCount,
		},
		Transactions: transactions,
		Summary:      summary,
	}, nil
}
