package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/ekthaa/khata_backend/models"
)

func accessPinHandler(c *gin.Context) {
	business, err := models.GetBusiness(c.Request.Context())
	if err != nil {
		respondError(c, "handlers_profile.go", "accessPinHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_pin":    business.AccessPin,
		"business_name": business.Name,
	})
}

func getProfileHandler(c *gin.Context) {
	profile, err := models.GetBusinessProfile(c.Request.Context())
	if err != nil {
		respondError(c, "handlers_profile.go", "getProfileHandler", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func updateProfileHandler(c *gin.Context) {
	var input models.ProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	business, err := models.UpdateBusinessProfile(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers_profile.go", "updateProfileHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Profile updated successfully",
		"business": business,
	})
}

func regeneratePinHandler(c *gin.Context) {
	pin, err := models.RegenerateAccessPin(c.Request.Context())
	if err != nil {
		respondError(c, "handlers_profile.go", "regeneratePinHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Access PIN regenerated successfully",
		"access_pin": pin,
	})
}

// profileQrHandler renders the access PIN as a QR PNG so customers can scan
// in at the counter.
func profileQrHandler(c *gin.Context) {
	business, err := models.GetBusiness(c.Request.Context())
	if err != nil {
		respondError(c, "handlers_profile.go", "profileQrHandler", err)
		return
	}

	png, err := qrcode.Encode(business.AccessPin, qrcode.Medium, 256)
	if err != nil {
		respondError(c, "handlers_profile.go", "profileQrHandler", err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
