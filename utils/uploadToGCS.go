package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// getGoogleClient initializes a Google Cloud Storage client.
func getGoogleClient(ctx context.Context) (*storage.Client, error) {
	// Prefer ADC (Cloud Run service account / GOOGLE_APPLICATION_CREDENTIALS).
	// If you need to provide explicit JSON (e.g. locally), set GCS_CREDENTIALS_JSON.
	if credJSON := os.Getenv("GCS_CREDENTIALS_JSON"); strings.TrimSpace(credJSON) != "" {
		client, err := storage.NewClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return client, nil
}

var allowedImageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadImageToGCS stores an image under folder/objectName in the configured
// bucket and returns the public URL. Rejects non-image content.
func UploadImageToGCS(ctx context.Context, folder string, objectName string, fileContent io.Reader) (string, error) {
	fileData, err := io.ReadAll(fileContent)
	if err != nil {
		return "", NewUpstreamError("failed to read file content", err)
	}

	mimeType := http.DetectContentType(fileData)
	if !allowedImageMimeTypes[mimeType] {
		return "", NewValidationError(fmt.Sprintf("unsupported file type: %s", mimeType))
	}

	return UploadBytesToGCS(ctx, folder, objectName, mimeType, fileData)
}

// UploadBytesToGCS writes already-validated bytes to the bucket.
func UploadBytesToGCS(ctx context.Context, folder string, objectName string, mimeType string, data []byte) (string, error) {
	bucketName := os.Getenv("GCS_BUCKET")
	if bucketName == "" {
		return "", NewUpstreamError("image storage not configured", errors.New("GCS_BUCKET is required"))
	}

	client, err := getGoogleClient(ctx)
	if err != nil {
		return "", NewUpstreamError("failed to connect to image storage", err)
	}
	defer client.Close()

	objectPath := objectName
	if folder != "" {
		objectPath = strings.TrimSuffix(folder, "/") + "/" + objectName
	}

	wc := client.Bucket(bucketName).Object(objectPath).NewWriter(ctx)
	wc.ContentType = mimeType
	wc.Metadata = map[string]string{
		"x-goog-acl": "public-read",
	}

	if _, err := wc.Write(data); err != nil {
		return "", NewUpstreamError("failed to upload image", err)
	}
	if err := wc.Close(); err != nil {
		return "", NewUpstreamError("failed to upload image", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, objectPath), nil
}
