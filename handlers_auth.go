package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ekthaa/khata_backend/config"
	"github.com/ekthaa/khata_backend/models"
	"github.com/ekthaa/khata_backend/utils"
)

func registerHandler(c *gin.Context) {
	var input models.NewRegistration
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "business_name, phone and password are required"})
		return
	}

	info, err := models.Register(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers_auth.go", "registerHandler", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Business registered successfully",
		"token":   info.Token,
		"user":    info,
	})
}

func loginHandler(c *gin.Context) {
	var input models.Credentials
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone and password are required"})
		return
	}

	info, err := models.Login(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers_auth.go", "loginHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   info.Token,
		"user":    info,
	})
}

// logoutHandler blacklists the presented token for its remaining lifetime.
// The auth middleware already validated it.
func logoutHandler(c *gin.Context) {
	token, ok := utils.GetTokenFromContext(c.Request.Context())
	if !ok || token == "" {
		auth := c.Request.Header.Get("Authorization")
		token = strings.TrimPrefix(auth, "Bearer ")
	}
	if token != "" {
		if err := config.SetRedisValue("blacklist:"+token, "1", utils.TokenLifespan()); err != nil {
			config.LogError(config.GetLogger(), "handlers_auth.go", "logoutHandler", "SetRedisValue", nil, err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func meHandler(c *gin.Context) {
	business, err := models.GetBusiness(c.Request.Context())
	if err != nil {
		respondError(c, "handlers_auth.go", "meHandler", err)
		return
	}

	userId, _ := utils.GetUserIdFromContext(c.Request.Context())
	userType, _ := utils.GetUserTypeFromContext(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"user_id":       userId,
		"user_type":     userType,
		"business_id":   business.ID.String(),
		"business_name": business.Name,
		"phone":         business.Phone,
	})
}
