package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekthaa/khata_backend/models"
)

// generateInvoiceHandler builds and renders an invoice PDF. With
// ?format=json the computed invoice is returned without rendering.
func generateInvoiceHandler(c *gin.Context) {
	var input models.InvoiceRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items are required"})
		return
	}

	invoice, err := models.BuildInvoice(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers_invoice.go", "generateInvoiceHandler", err)
		return
	}

	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, gin.H{"invoice": invoice})
		return
	}

	pdf, err := models.RenderInvoicePDF(invoice)
	if err != nil {
		respondError(c, "handlers_invoice.go", "generateInvoiceHandler", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+invoice.InvoiceNumber+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
