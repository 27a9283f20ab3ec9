package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekthaa/khata_backend/models"
)

func listRecurringHandler(c *gin.Context) {
	recurring, err := models.ListRecurringTransactions(c.Request.Context())
	if err != nil {
		respondError(c, "handlers_recurring.go", "listRecurringHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recurring_transactions": recurring,
		"count":                  len(recurring),
	})
}

func createRecurringHandler(c *gin.Context) {
	var input models.NewRecurringTransaction
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer_id, amount and frequency are required"})
		return
	}

	recurring, err := models.CreateRecurringTransaction(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers_recurring.go", "createRecurringHandler", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":               "Recurring transaction created successfully",
		"recurring_transaction": recurring,
	})
}

func toggleRecurringHandler(c *gin.Context) {
	isActive, err := models.ToggleRecurringTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers_recurring.go", "toggleRecurringHandler", err)
		return
	}

	message := "Recurring transaction deactivated successfully"
	if isActive {
		message = "Recurring transaction activated successfully"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   message,
		"is_active": isActive,
	})
}

func deleteRecurringHandler(c *gin.Context) {
	if err := models.DeleteRecurringTransaction(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "handlers_recurring.go", "deleteRecurringHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recurring transaction deleted successfully"})
}
