package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ekthaa/khata_backend/models"
	"github.com/ekthaa/khata_backend/utils"
)

// createTransactionHandler accepts JSON, or multipart form data when a
// receipt image is attached.
func createTransactionHandler(c *gin.Context) {
	var input models.NewTransaction

	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		input.CustomerId = c.PostForm("customer_id")
		input.Type = models.TransactionType(c.PostForm("type"))
		input.Notes = c.PostForm("notes")

		amount, err := decimal.NewFromString(c.PostForm("amount"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
			return
		}
		input.Amount = amount

		if file, err := c.FormFile("bill_image"); err == nil {
			url, err := uploadReceiptImage(c.Request.Context(), file)
			if err != nil {
				respondError(c, "handlers_transactions.go", "createTransactionHandler", err)
				return
			}
			input.ReceiptImageUrl = url
		}
	} else {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "customer_id, type and amount are required"})
			return
		}
	}

	transaction, err := models.CreateTransaction(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers_transactions.go", "createTransactionHandler", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Transaction recorded successfully",
		"transaction": transaction,
	})
}

func listTransactionsHandler(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	transactions, err := models.ListTransactions(c.Request.Context(), limit)
	if err != nil {
		respondError(c, "handlers_transactions.go", "listTransactionsHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

func transactionBillHandler(c *gin.Context) {
	transaction, err := models.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers_transactions.go", "transactionBillHandler", err)
		return
	}
	if transaction.ReceiptImageUrl == "" {
		respondError(c, "handlers_transactions.go", "transactionBillHandler",
			utils.NewNotFoundError("transaction has no bill image"))
		return
	}
	c.Redirect(http.StatusFound, transaction.ReceiptImageUrl)
}
