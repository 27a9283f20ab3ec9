package main

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"

	"github.com/ekthaa/khata_backend/models"
	"github.com/ekthaa/khata_backend/utils"
)

const maxUploadSizeBytes int64 = 5 * 1024 * 1024

// uploadImage stores the original in GCS plus a 200px-wide JPEG thumbnail
// under a thumbnails/ prefix. The returned URL is the original's.
func uploadImage(ctx context.Context, folder string, header *multipart.FileHeader) (string, error) {
	if header.Size > maxUploadSizeBytes {
		return "", utils.NewValidationError("file size exceeds 5MB limit")
	}

	file, err := header.Open()
	if err != nil {
		return "", utils.NewUpstreamError("failed to read uploaded file", err)
	}
	defer file.Close()

	ext := strings.ToLower(path.Ext(header.Filename))
	objectName := utils.GenerateUniqueFilename() + ext

	url, err := utils.UploadImageToGCS(ctx, folder, objectName, file)
	if err != nil {
		return "", err
	}

	// Thumbnail is best-effort; the original upload already succeeded.
	if _, err := file.Seek(0, 0); err == nil {
		if img, err := imaging.Decode(file); err == nil {
			thumbnail := imaging.Resize(img, 200, 0, imaging.Lanczos)
			var buf bytes.Buffer
			if err := imaging.Encode(&buf, thumbnail, imaging.JPEG); err == nil {
				_, _ = utils.UploadBytesToGCS(ctx, path.Join(folder, "thumbnails"), objectName, "image/jpeg", buf.Bytes())
			}
		}
	}
	return url, nil
}

func uploadReceiptImage(ctx context.Context, header *multipart.FileHeader) (string, error) {
	return uploadImage(ctx, "receipts", header)
}

// productImageHandler handles the standalone image upload used by product
// and offer forms; the returned URL goes into the subsequent create/update.
func productImageHandler(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	url, err := uploadImage(c.Request.Context(), "products", file)
	if err != nil {
		respondError(c, "uploads.go", "productImageHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

func profilePhotoHandler(c *gin.Context) {
	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}

	url, err := uploadImage(c.Request.Context(), "profiles", file)
	if err != nil {
		respondError(c, "uploads.go", "profilePhotoHandler", err)
		return
	}

	business, err := models.UpdateBusinessProfile(c.Request.Context(), &models.ProfileUpdate{ProfilePhotoUrl: &url})
	if err != nil {
		respondError(c, "uploads.go", "profilePhotoHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Profile photo updated successfully",
		"business": business,
	})
}
