package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekthaa/khata_backend/models"
)

func listVouchersHandler(c *gin.Context) {
	vouchers, err := models.ListVouchers(c.Request.Context())
	if err != nil {
		respondError(c, "handlers_vouchers.go", "listVouchersHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"vouchers": vouchers,
		"count":    len(vouchers),
	})
}

func createVoucherHandler(c *gin.Context) {
	var input models.NewVoucher
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code, discount and valid_until are required"})
		return
	}

	voucher, err := models.CreateVoucher(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers_vouchers.go", "createVoucherHandler", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Voucher created successfully",
		"voucher": voucher,
	})
}

func updateVoucherHandler(c *gin.Context) {
	var input models.VoucherUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	voucher, err := models.UpdateVoucher(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, "handlers_vouchers.go", "updateVoucherHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Voucher updated successfully",
		"voucher": voucher,
	})
}

func deleteVoucherHandler(c *gin.Context) {
	if err := models.DeleteVoucher(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "handlers_vouchers.go", "deleteVoucherHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Voucher deleted successfully"})
}

func listOffersHandler(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	offers, err := models.ListOffers(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, "handlers_vouchers.go", "listOffersHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"offers": offers,
		"count":  len(offers),
	})
}

func createOfferHandler(c *gin.Context) {
	var input models.NewOffer
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and valid_until are required"})
		return
	}

	offer, err := models.CreateOffer(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers_vouchers.go", "createOfferHandler", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Offer created successfully",
		"offer":   offer,
	})
}

func updateOfferHandler(c *gin.Context) {
	var input models.OfferUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	offer, err := models.UpdateOffer(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, "handlers_vouchers.go", "updateOfferHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Offer updated successfully",
		"offer":   offer,
	})
}

func deleteOfferHandler(c *gin.Context) {
	if err := models.DeleteOffer(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "handlers_vouchers.go", "deleteOfferHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Offer deleted successfully"})
}
