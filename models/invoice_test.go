package models

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/ekthaa/khata_backend/utils"
)

func TestBuildInvoiceRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input InvoiceRequest
	}{
		{"no items", InvoiceRequest{}},
		{"negative discount", InvoiceRequest{
			Items:    []InvoiceItem{{Name: "Rice", Quantity: mustDecimal("1"), Price: mustDecimal("60")}},
			Discount: mustDecimal("-5"),
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildInvoice(context.Background(), &tc.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if utils.HTTPStatus(err) != 400 {
				t.Errorf("HTTPStatus(err) = %d, want 400", utils.HTTPStatus(err))
			}
		})
	}
}

func TestRenderInvoicePDF(t *testing.T) {
	invoice := &Invoice{
		InvoiceNumber: "INV-20260830-120000",
		BusinessName:  "Sharma General Store",
		BusinessPhone: "9876543210",
		CustomerName:  "Ramesh",
		Lines: []InvoiceLine{
			{Name: "Rice", Quantity: mustDecimal("2.5"), Unit: "kg", Price: mustDecimal("60"), Total: mustDecimal("150.00")},
			{Name: "Oil", Quantity: mustDecimal("1"), Unit: "liter", Price: mustDecimal("185.50"), Total: mustDecimal("185.50")},
		},
		Subtotal: mustDecimal("335.50"),
		Discount: mustDecimal("35.50"),
		Total:    mustDecimal("300.00"),
		Notes:    "Thank you for your business.",
		IssuedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}

	pdf, err := RenderInvoicePDF(invoice)
	if err != nil {
		t.Fatalf("RenderInvoicePDF: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("empty pdf output")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header: %q", pdf[:8])
	}
}
