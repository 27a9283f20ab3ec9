package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekthaa/khata_backend/models"
)

func createCustomerHandler(c *gin.Context) {
	var input models.NewCustomer
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and phone are required"})
		return
	}

	customer, err := models.CreateCustomer(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers_customers.go", "createCustomerHandler", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Customer created successfully",
		"customer": customer,
	})
}

func listCustomersHandler(c *gin.Context) {
	customers, err := models.ListCustomers(c.Request.Context())
	if err != nil {
		respondError(c, "handlers_customers.go", "listCustomersHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"customers": customers,
		"count":     len(customers),
	})
}

func searchCustomersHandler(c *gin.Context) {
	customers, err := models.SearchCustomers(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, "handlers_customers.go", "searchCustomersHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"customers": customers,
		"count":     len(customers),
	})
}

func customerDetailsHandler(c *gin.Context) {
	details, err := models.GetCustomerDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers_customers.go", "customerDetailsHandler", err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func customerTransactionsHandler(c *gin.Context) {
	// Ownership check happens on the customer fetch.
	customer, err := models.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers_customers.go", "customerTransactionsHandler", err)
		return
	}

	transactions, err := models.ListCustomerTransactions(c.Request.Context(), customer.ID.String())
	if err != nil {
		respondError(c, "handlers_customers.go", "customerTransactionsHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

func remindCustomerHandler(c *gin.Context) {
	reminder, err := models.RemindCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers_customers.go", "remindCustomerHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Reminder URL generated for " + reminder.CustomerName,
		"reminder": reminder,
	})
}

func remindAllHandler(c *gin.Context) {
	reminders, err := models.RemindAllCustomers(c.Request.Context())
	if err != nil {
		respondError(c, "handlers_customers.go", "remindAllHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reminders": reminders,
		"count":     len(reminders),
	})
}
