package models

import (
	"log"

	"github.com/ekthaa/khata_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&User{}, &Business{},
		&Customer{}, &Transaction{}, &CustomerCredit{},
		&RecurringTransaction{},
		&Product{},
		&Voucher{}, &Offer{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
