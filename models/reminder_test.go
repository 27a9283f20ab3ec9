package models

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildReminderOutstanding(t *testing.T) {
	r := BuildReminder("c1", "Ramesh", "9876543210", "Sharma General Store", mustDecimal("250.5"))

	if !strings.Contains(r.Message, "outstanding balance of ₹250.50") {
		t.Errorf("message missing formatted amount: %q", r.Message)
	}
	if !strings.Contains(r.Message, "Hello Ramesh,") {
		t.Errorf("message missing greeting: %q", r.Message)
	}
	if !strings.Contains(r.Message, "Sharma General Store") {
		t.Errorf("message missing business name: %q", r.Message)
	}
	if !r.PhoneValid {
		t.Error("phone should be valid")
	}
	if r.Phone != "919876543210" {
		t.Errorf("phone = %q, want 919876543210", r.Phone)
	}
	if !strings.HasPrefix(r.WhatsappUrl, "https://wa.me/919876543210?text=") {
		t.Errorf("unexpected deep link: %q", r.WhatsappUrl)
	}

	// The encoded text must round-trip back to the message.
	encoded := strings.TrimPrefix(r.WhatsappUrl, "https://wa.me/919876543210?text=")
	decoded, err := url.QueryUnescape(encoded)
	if err != nil {
		t.Fatalf("decode link text: %v", err)
	}
	if decoded != r.Message {
		t.Errorf("link text round-trip mismatch:\n%q\n%q", decoded, r.Message)
	}
}

func TestBuildReminderGoodwill(t *testing.T) {
	for _, balance := range []string{"0", "-120.00"} {
		r := BuildReminder("c1", "Sita", "09123456780", "Sharma General Store", mustDecimal(balance))
		if strings.Contains(r.Message, "outstanding") {
			t.Errorf("balance %s: goodwill message should not demand payment: %q", balance, r.Message)
		}
		if !strings.Contains(r.Message, "Thank you for keeping your account up to date") {
			t.Errorf("balance %s: unexpected message %q", balance, r.Message)
		}
		if r.Phone != "919123456780" {
			t.Errorf("phone = %q, want 919123456780", r.Phone)
		}
	}
}

func TestBuildReminderUnusablePhone(t *testing.T) {
	r := BuildReminder("c1", "Arjun", "", "Sharma General Store", mustDecimal("500"))

	if r.PhoneValid {
		t.Error("empty phone should not be valid")
	}
	if r.WhatsappUrl != "" {
		t.Errorf("deep link should be omitted, got %q", r.WhatsappUrl)
	}
	// The message is still built so the caller can show it.
	if !strings.Contains(r.Message, "₹500.00") {
		t.Errorf("message missing amount: %q", r.Message)
	}
}

func TestBuildReminderDefaults(t *testing.T) {
	r := BuildReminder("c1", "", "9876543210", "", decimal.Zero)
	if !strings.Contains(r.Message, "Hello Customer,") {
		t.Errorf("missing customer fallback: %q", r.Message)
	}
	if !strings.Contains(r.Message, "Business") {
		t.Errorf("missing business fallback: %q", r.Message)
	}
}
