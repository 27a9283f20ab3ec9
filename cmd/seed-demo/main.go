// seed-demo creates a demo business with a few customers and ledger entries
// for local development.
//
// Usage:
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... \
//	go run ./cmd/seed-demo
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ekthaa/khata_backend/config"
	"github.com/ekthaa/khata_backend/models"
	"github.com/ekthaa/khata_backend/utils"
)

const (
	demoPhone    = "9000000001"
	demoPassword = "demo1234"
	demoName     = "Demo Kirana Store"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	models.MigrateTable()

	scanCtx := utils.SetSkipTenantScopeInContext(ctx, true)
	var existing models.User
	err := db.WithContext(scanCtx).Where("phone = ?", demoPhone).Take(&existing).Error
	if err == nil {
		fmt.Println("demo business already seeded; nothing to do")
		return
	}
	if err != gorm.ErrRecordNotFound {
		fmt.Fprintf(os.Stderr, "failed to lookup demo user: %v\n", err)
		os.Exit(1)
	}

	info, err := models.Register(ctx, &models.NewRegistration{
		BusinessName: demoName,
		Phone:        demoPhone,
		Password:     demoPassword,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to register demo business: %v\n", err)
		os.Exit(1)
	}

	bizCtx := utils.SetBusinessIdInContext(ctx, info.BusinessId.String())
	bizCtx = utils.SetUserIdInContext(bizCtx, info.UserId.String())
	bizCtx = utils.SetUserTypeInContext(bizCtx, utils.UserTypeBusiness)

	type seedEntry struct {
		kind   models.TransactionType
		amount string
		notes  string
	}
	customers := []struct {
		name    string
		phone   string
		entries []seedEntry
	}{
		{"Ramesh Kumar", "9876543210", []seedEntry{
			{models.TransactionTypeCredit, "500.00", "groceries"},
			{models.TransactionTypeCredit, "250.50", "milk and bread"},
			{models.TransactionTypePayment, "300.00", "part payment"},
		}},
		{"Sita Devi", "9123456780", []seedEntry{
			{models.TransactionTypeCredit, "1200.00", "monthly ration"},
		}},
		{"Arjun Singh", "9988776655", []seedEntry{
			{models.TransactionTypeCredit, "150.00", "snacks"},
			{models.TransactionTypePayment, "150.00", "settled"},
		}},
	}

	for _, c := range customers {
		customer, err := models.CreateCustomer(bizCtx, &models.NewCustomer{Name: c.name, Phone: c.phone})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create customer %s: %v\n", c.name, err)
			os.Exit(1)
		}
		for _, e := range c.entries {
			amount, _ := decimal.NewFromString(e.amount)
			if _, err := models.CreateTransaction(bizCtx, &models.NewTransaction{
				CustomerId: customer.ID.String(),
				Type:       e.kind,
				Amount:     amount,
				Notes:      e.notes,
			}); err != nil {
				fmt.Fprintf(os.Stderr, "failed to create transaction for %s: %v\n", c.name, err)
				os.Exit(1)
			}
		}
	}

	fmt.Printf("seeded %q (phone %s, password %s, pin %s)\n", demoName, demoPhone, demoPassword, info.BusinessPin)
}
