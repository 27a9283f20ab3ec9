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

// RecurringTransaction is a saved schedule definition. Nothing executes it;
// it exists so the owner can review and toggle planned entries. Actual
// ledger entries are always created explicitly.
type RecurringTransaction struct {
	ID                uuid.UUID       `gorm:"primary_key" json:"id"`
	BusinessId        uuid.UUID       `gorm:"index;not null" json:"business_id"`
	CustomerId        uuid.UUID       `gorm:"index;not null" json:"customer_id"`
	Type              TransactionType `gorm:"size:10;not null;default:credit" json:"type"`
	Amount            decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Frequency         Frequency       `gorm:"size:10;not null" json:"frequency"`
	Notes             string          `gorm:"size:500" json:"notes"`
	IsActive          *bool           `gorm:"not null;default:true" json:"is_active"`
	NextExecutionDate time.Time       `json:"next_execution_date"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewRecurringTransaction struct {
	CustomerId string          `json:"customer_id" binding:"required"`
	Type       TransactionType `json:"type"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Frequency  Frequency       `json:"frequency" binding:"required"`
	Notes      string          `json:"notes"`
}

type RecurringTransactionWithCustomer struct {
	RecurringTransaction
	CustomerName string `json:"customer_name"`
}

// CreateRecurringTransaction saves a schedule after verifying the customer
// belongs to the acting business.
func CreateRecurringTransaction(ctx context.Context, input *NewRecurringTransaction) (*RecurringTransaction, error) {
	if input.Type == "" {
		input.Type = TransactionTypeCredit
	}
	if !input.Type.IsValid() {
		return nil, utils.NewValidationError("transaction type must be credit or payment")
	}
	if !input.Frequency.IsValid() {
		return nil, utils.NewValidationError("frequency must be daily, weekly, or monthly")
	}
	if !input.Amount.IsPositive() {
		return nil, utils.NewValidationError("amount must be greater than zero")
	}

	customer, err := GetCustomer(ctx, input.CustomerId)
	if err != nil {
		return nil, err
	}

	recurring := RecurringTransaction{
		ID:                uuid.New(),
		BusinessId:        customer.BusinessId,
		CustomerId:        customer.ID,
		Type:              input.Type,
		Amount:            input.Amount,
		Frequency:         input.Frequency,
		Notes:             input.Notes,
		IsActive:          utils.NewTrue(),
		NextExecutionDate: time.Now().UTC(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&recurring).Error; err != nil {
		return nil, utils.NewUpstreamError("failed to create recurring transaction", err)
	}
	return &recurring, nil
}

// ListRecurringTransactions returns the business's schedules with customer
// names, newest first.
func ListRecurringTransactions(ctx context.Context) ([]RecurringTransactionWithCustomer, error) {
	db := config.GetDB()

	var recurring []RecurringTransactionWithCustomer
	if err := db.WithContext(ctx).
		Table("recurring_transactions").
		Select("recurring_transactions.*, customers.name AS customer_name").
		Joins("LEFT JOIN customers ON customers.id = recurring_transactions.customer_id").
		Order("recurring_transactions.created_at DESC").
		Find(&recurring).Error; err != nil {
		return nil, utils.NewUpstreamError("failed to list recurring transactions", err)
	}
	return recurring, nil
}

func getRecurringTransaction(ctx context.Context, id string) (*RecurringTransaction, error) {
	db := config.GetDB()

	fetchCtx := utils.SetSkipTenantScopeInContext(ctx, true)
	var recurring RecurringTransaction
	if err := db.WithContext(fetchCtx).Where("id = ?", id).Take(&recurring).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("recurring transaction not found")
		}
		return nil, utils.NewUpstreamError("failed to fetch recurring transaction", err)
	}
	if err := assertOwns(ctx, recurring.BusinessId); err != nil {
		return nil, err
	}
	return &recurring, nil
}

// ToggleRecurringTransaction flips the schedule's active flag and returns
// the new state.
func ToggleRecurringTransaction(ctx context.Context, id string) (bool, error) {
	recurring, err := getRecurringTransaction(ctx, id)
	if err != nil {
		return false, err
	}

	newStatus := recurring.IsActive == nil || !*recurring.IsActive
	db := config.GetDB()
	if err := db.WithContext(ctx).
		Model(&RecurringTransaction{}).
		Where("id = ?", recurring.ID).
		Update("is_active", newStatus).Error; err != nil {
		return false, utils.NewUpstreamError("failed to toggle recurring transaction", err)
	}
	return newStatus, nil
}

func DeleteRecurringTransaction(ctx context.Context, id string) error {
	recurring, err := getRecurringTransaction(ctx, id)
	if err != nil {
		return err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(&RecurringTransaction{}, "id = ?", recurring.ID).Error; err != nil {
		return utils.NewUpstreamError("failed to delete recurring transaction", err)
	}
	return nil
}
