package models

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/ekthaa/khata_backend/utils"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

type InvoiceItem struct {
	Name     string          `json:"name" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price" binding:"required"`
}

type InvoiceRequest struct {
	CustomerId    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	InvoiceNumber string          `json:"invoice_number"`
	Items         []InvoiceItem   `json:"items" binding:"required"`
	Discount      decimal.Decimal `json:"discount"`
	Notes         string          `json:"notes"`
}

type InvoiceLine struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
}

type Invoice struct {
	InvoiceNumber string          `json:"invoice_number"`
	BusinessName  string          `json:"business_name"`
	BusinessPhone string          `json:"business_phone"`
	CustomerName  string          `json:"customer_name"`
	Lines         []InvoiceLine   `json:"lines"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	Notes         string          `json:"notes"`
	IssuedAt      time.Time       `json:"issued_at"`
}

// BuildInvoice validates the request and computes all totals in decimal
// arithmetic. The discount is an absolute amount, capped at the subtotal so
// the total never goes negative.
func BuildInvoice(ctx context.Context, input *InvoiceRequest) (*Invoice, error) {
	if len(input.Items) == 0 {
		return nil, utils.NewValidationError("at least one invoice item is required")
	}
	if input.Discount.IsNegative() {
		return nil, utils.NewValidationError("discount must be non-negative")
	}

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.NewUnauthenticatedError("business id missing from token")
	}
	business, err := GetBusiness(ctx)
	if err != nil {
		return nil, err
	}

	customerName := input.CustomerName
	if input.CustomerId != "" {
		customer, err := GetCustomer(ctx, input.CustomerId)
		if err != nil {
			return nil, err
		}
		customerName = customer.Name
	}

	lines := make([]InvoiceLine, 0, len(input.Items))
	subtotal := decimal.Zero
	for _, item := range input.Items {
		if item.Name == "" {
			return nil, utils.NewValidationError("item name is required")
		}
		if !item.Quantity.IsPositive() {
			return nil, utils.NewValidationError("item quantity must be greater than zero")
		}
		if item.Price.IsNegative() {
			return nil, utils.NewValidationError("item price must be non-negative")
		}
		total := item.Quantity.Mul(item.Price).Round(2)
		lines = append(lines, InvoiceLine{
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Price:    item.Price,
			Total:    total,
		})
		subtotal = subtotal.Add(total)
	}

	discount := input.Discount
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	number := input.InvoiceNumber
	if number == "" {
		number = fmt.Sprintf("INV-%s", time.Now().UTC().Format("20060102-150405"))
	}

	return &Invoice{
		InvoiceNumber: number,
		BusinessName:  business.Name,
		BusinessPhone: business.Phone,
		CustomerName:  customerName,
		Lines:         lines,
		Subtotal:      subtotal,
		Discount:      discount,
		Total:         subtotal.Sub(discount),
		Notes:         input.Notes,
		IssuedAt:      time.Now().UTC(),
	}, nil
}

// RenderInvoicePDF lays the invoice out as a single-page A4 table.
func RenderInvoicePDF(invoice *Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, invoice.BusinessName)
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 10)
	if invoice.BusinessPhone != "" {
		pdf.Cell(0, 6, "Phone: "+invoice.BusinessPhone)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Invoice "+invoice.InvoiceNumber)
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "Date: "+invoice.IssuedAt.Format("02 Jan 2006"))
	pdf.Ln(6)
	if invoice.CustomerName != "" {
		pdf.Cell(0, 6, "Billed to: "+invoice.CustomerName)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	colWidths := []float64{80, 25, 20, 30, 35}
	headers := []string{"Item", "Qty", "Unit", "Price", "Total"}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, line := range invoice.Lines {
		pdf.CellFormat(colWidths[0], 8, line.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 8, line.Quantity.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[2], 8, line.Unit, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[3], 8, utils.FormatAmount(line.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[4], 8, utils.FormatAmount(line.Total), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	labelWidth := colWidths[0] + colWidths[1] + colWidths[2] + colWidths[3]
	writeTotal := func(label string, amount decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(labelWidth, 8, label, "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[4], 8, utils.FormatAmount(amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	writeTotal("Subtotal", invoice.Subtotal, false)
	if invoice.Discount.IsPositive() {
		writeTotal("Discount", invoice.Discount, false)
	}
	writeTotal("Total", invoice.Total, true)

	if invoice.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, invoice.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, utils.NewUpstreamError("failed to render invoice pdf", err)
	}
	return buf.Bytes(), nil
}
