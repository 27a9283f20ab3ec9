package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekthaa/khata_backend/models"
	"github.com/ekthaa/khata_backend/utils"
)

func listProductsHandler(c *gin.Context) {
	filter := models.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if v, ok := c.GetQuery("is_public"); ok {
		if v == "true" {
			filter.IsPublic = utils.NewTrue()
		} else {
			filter.IsPublic = utils.NewFalse()
		}
	}

	products, err := models.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "handlers_products.go", "listProductsHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

func createProductHandler(c *gin.Context) {
	var input models.NewProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, category, stock_quantity and unit are required"})
		return
	}

	product, err := models.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers_products.go", "createProductHandler", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Product added successfully",
		"product": product,
	})
}

func getProductHandler(c *gin.Context) {
	product, err := models.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers_products.go", "getProductHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"product":      product,
		"is_low_stock": product.IsLowStock(),
	})
}

func updateProductHandler(c *gin.Context) {
	var input models.ProductUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product, err := models.UpdateProduct(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, "handlers_products.go", "updateProductHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

func deleteProductHandler(c *gin.Context) {
	if err := models.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "handlers_products.go", "deleteProductHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func productCategoriesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.ProductCategories})
}

func productUnitsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"units": models.ProductUnits})
}
