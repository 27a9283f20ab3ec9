package models

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ekthaa/khata_backend/utils"
	"github.com/shopspring/decimal"
)

// Reminder is a prepared WhatsApp nudge for one customer. WhatsappUrl is
// empty when the customer has no usable phone number.
type Reminder struct {
	CustomerId   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Phone        string          `json:"phone"`
	Balance      decimal.Decimal `json:"balance"`
	Message      string          `json:"message"`
	WhatsappUrl  string          `json:"whatsapp_url,omitempty"`
	PhoneValid   bool            `json:"phone_valid"`
}

// BuildReminder composes the message and deep link without touching the
// database. A positive balance gets the dues template; zero or negative gets
// a goodwill note instead, never a demand for money the customer does not
// owe.
func BuildReminder(customerId, customerName, phone, businessName string, balance decimal.Decimal) Reminder {
	if customerName == "" {
		customerName = "Customer"
	}
	if businessName == "" {
		businessName = "Business"
	}

	var message string
	if balance.IsPositive() {
		message = fmt.Sprintf(
			"Hello %s,\n\nJust a reminder about your outstanding balance of ₹%s with %s.\n\nThank you!",
			customerName, utils.FormatAmount(balance), businessName)
	} else {
		message = fmt.Sprintf(
			"Hello %s,\n\nThank you for keeping your account up to date with %s!",
			customerName, businessName)
	}

	reminder := Reminder{
		CustomerId:   customerId,
		CustomerName: customerName,
		Phone:        phone,
		Balance:      balance,
		Message:      message,
	}

	normalized, err := utils.NormalizePhone(phone)
	if err != nil {
		return reminder
	}
	reminder.Phone = normalized
	reminder.PhoneValid = true
	reminder.WhatsappUrl = fmt.Sprintf("https://wa.me/%s?text=%s", normalized, url.QueryEscape(message))
	return reminder
}

// RemindCustomer builds one customer's reminder from their live balance.
func RemindCustomer(ctx context.Context, customerId string) (*Reminder, error) {
	customer, err := GetCustomer(ctx, customerId)
	if err != nil {
		return nil, err
	}
	business, err := GetBusiness(ctx)
	if err != nil {
		return nil, err
	}
	summary, err := CustomerBalance(ctx, customerId)
	if err != nil {
		return nil, err
	}

	reminder := BuildReminder(customer.ID.String(), customer.Name, customer.Phone, business.Name, summary.Balance)
	return &reminder, nil
}

// RemindAllCustomers builds reminders for every customer who currently owes
// money. Customers with unusable phone numbers are still listed, with the
// deep link left empty.
func RemindAllCustomers(ctx context.Context) ([]Reminder, error) {
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

	reminders := make([]Reminder, 0)
	for _, c := range customers {
		if !c.Balance.IsPositive() {
			continue
		}
		reminders = append(reminders, BuildReminder(c.ID.String(), c.Name, c.Phone, business.Name, c.Balance))
	}
	return reminders, nil
}
