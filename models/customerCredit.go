package models

import (
	"context"
	"time"

	"github.com/ekthaa/khata_backend/config"
	"github.com/ekthaa/khata_backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CustomerCredit is the materialized running balance for one customer. It is
// a read-optimization only; the transaction log stays authoritative and this
// row can be rebuilt from it at any time.
type CustomerCredit struct {
	CustomerId       uuid.UUID       `gorm:"primary_key" json:"customer_id"`
	BusinessId       uuid.UUID       `gorm:"index;not null" json:"business_id"`
	Balance          decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"balance"`
	TransactionCount int             `gorm:"not null" json:"transaction_count"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// applyToCustomerCredit folds one new entry into the materialized balance.
// Must run inside the same database transaction that inserts the entry so
// the view can never drift ahead of the log.
func applyToCustomerCredit(tx *gorm.DB, transaction *Transaction) error {
	delta := transaction.Amount
	if transaction.Type == TransactionTypePayment {
		delta = delta.Neg()
	}

	credit := CustomerCredit{
		CustomerId:       transaction.CustomerId,
		BusinessId:       transaction.BusinessId,
		Balance:          delta,
		TransactionCount: 1,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "customer_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"balance":           gorm.Expr("balance + ?", delta),
			"transaction_count": gorm.Expr("transaction_count + 1"),
		}),
	}).Create(&credit).Error
}

// GetCustomerCredit reads the materialized balance, caching per customer.
// Callers that need the authoritative figure use CustomerBalance instead.
func GetCustomerCredit(ctx context.Context, customerId string) (*CustomerCredit, error) {
	cached, err := utils.RetrieveRedis[CustomerCredit](customerId)
	if err == nil && cached != nil {
		return cached, nil
	}

	db := config.GetDB()
	var credit CustomerCredit
	if err := db.WithContext(ctx).Where("customer_id = ?", customerId).Take(&credit).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// No entries yet: a zero balance, not an error.
			return &CustomerCredit{Balance: decimal.Zero}, nil
		}
		return nil, utils.NewUpstreamError("failed to fetch customer credit", err)
	}

	utils.StoreRedis[CustomerCredit](&credit, customerId)
	return &credit, nil
}

// RebuildCustomerCredits recomputes every materialized balance of the acting
// business from the full transaction log, fixing any drift.
func RebuildCustomerCredits(ctx context.Context) (int, error) {
	balances, err := CustomerBalances(ctx)
	if err != nil {
		return 0, err
	}

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return 0, utils.NewUnauthenticatedError("business id missing from context")
	}

	db := config.GetDB()
	rebuilt := 0
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("business_id = ?", businessId).Delete(&CustomerCredit{}).Error; err != nil {
			return err
		}
		for customerId, summary := range balances {
			credit := CustomerCredit{
				CustomerId:       uuid.MustParse(customerId),
				BusinessId:       uuid.MustParse(businessId),
				Balance:          summary.Balance,
				TransactionCount: summary.TransactionCount,
			}
			if err := tx.Create(&credit).Error; err != nil {
				return err
			}
			rebuilt++
		}
		return nil
	})
	if err != nil {
		return 0, utils.NewUpstreamError("failed to rebuild customer credits", err)
	}

	for customerId := range balances {
		utils.RemoveRedisItem[CustomerCredit](customerId)
	}
	return rebuilt, nil
}
