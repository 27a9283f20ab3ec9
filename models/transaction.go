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

// Transaction is an append-only ledger entry. Entries are never updated or
// deleted; corrections are recorded as compensating entries.
type Transaction struct {
	ID           uuid.UUID       `gorm:"primary_key" json:"id"`
	BusinessId   uuid.UUID       `gorm:"index;not null" json:"business_id"`
	CustomerId   uuid.UUID       `gorm:"index;not null" json:"customer_id"`
	Type            TransactionType `gorm:"size:10;not null" json:"type"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Notes           string          `gorm:"size:500" json:"notes"`
	ReceiptImageUrl string          `gorm:"size:500" json:"receipt_image_url"`
	CreatedBy       uuid.UUID       `gorm:"index" json:"created_by"`
	CreatedAt       time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
}

type NewTransaction struct {
	CustomerId      string          `json:"customer_id" binding:"required"`
	Type            TransactionType `json:"type" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Notes           string          `json:"notes"`
	ReceiptImageUrl string          `json:"-"`
}

type TransactionWithCustomer struct {
	Transaction
	CustomerName string `json:"customer_name"`
}

func (input *NewTransaction) validate() error {
	if !input.Type.IsValid() {
		return utils.NewValidationError("transaction type must be credit or payment")
	}
	if !input.Amount.IsPositive() {
		return utils.NewValidationError("amount must be greater than zero")
	}
	return nil
}

// CreateTransaction appends a ledger entry and updates the customer's
// materialized balance in the same database transaction.
func CreateTransaction(ctx context.Context, input *NewTransaction) (*Transaction, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	customer, err := GetCustomer(ctx, input.CustomerId)
	if err != nil {
		return nil, err
	}

	transaction := Transaction{
		ID:              uuid.New(),
		BusinessId:      customer.BusinessId,
		CustomerId:      customer.ID,
		Type:            input.Type,
		Amount:          input.Amount,
		Notes:           input.Notes,
		ReceiptImageUrl: input.ReceiptImageUrl,
	}
	if userId, ok := utils.GetUserIdFromContext(ctx); ok && userId != "" {
		transaction.CreatedBy = uuid.MustParse(userId)
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}
		return applyToCustomerCredit(tx, &transaction)
	})
	if err != nil {
		return nil, utils.NewUpstreamError("failed to record transaction", err)
	}

	utils.RemoveRedisItem[CustomerCredit](customer.ID.String())
	return &transaction, nil
}

// GetTransaction fetches a single ledger entry with the ownership check.
func GetTransaction(ctx context.Context, id string) (*Transaction, error) {
	db := config.GetDB()

	fetchCtx := utils.SetSkipTenantScopeInContext(ctx, true)
	var transaction Transaction
	if err := db.WithContext(fetchCtx).Where("id = ?", id).Take(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("transaction not found")
		}
		return nil, utils.NewUpstreamError("failed to fetch transaction", err)
	}
	if err := assertOwns(ctx, transaction.BusinessId); err != nil {
		return nil, err
	}
	return &transaction, nil
}

// ListTransactions returns the business's entries newest first, joined with
// customer names for display.
func ListTransactions(ctx context.Context, limit int) ([]TransactionWithCustomer, error) {
	db := config.GetDB()

	query := db.WithContext(ctx).
		Table("transactions").
		Select("transactions.*, customers.name AS customer_name").
		Joins("LEFT JOIN customers ON customers.id = transactions.customer_id").
		Order("transactions.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var transactions []TransactionWithCustomer
	if err := query.Find(&transactions).Error; err != nil {
		return nil, utils.NewUpstreamError("failed to list transactions", err)
	}
	return transactions, nil
}

// ListCustomerTransactions returns every entry for one customer, newest
// first. The full log is always read; balances must never be computed from a
// truncated window.
func ListCustomerTransactions(ctx context.Context, customerId string) ([]Transaction, error) {
	db := config.GetDB()

	var transactions []Transaction
	if err := db.WithContext(ctx).
		Where("customer_id = ?", customerId).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, utils.NewUpstreamError("failed to list transactions", err)
	}
	return transactions, nil
}

// TransactionReceipt is the payload rendered for a single entry's receipt
// view.
type TransactionReceipt struct {
	Transaction  Transaction `json:"transaction"`
	CustomerName string      `json:"customer_name"`
	BusinessName string      `json:"business_name"`
}

func GetTransactionReceipt(ctx context.Context, id string) (*TransactionReceipt, error) {
	transaction, err := GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	customer, err := GetCustomer(ctx, transaction.CustomerId.String())
	if err != nil {
		return nil, err
	}
	business, err := GetBusiness(ctx)
	if err != nil {
		return nil, err
	}
	return &TransactionReceipt{
		Transaction:  *transaction,
		CustomerName: customer.Name,
		BusinessName: business.Name,
	}, nil
}
