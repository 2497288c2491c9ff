package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/toptours/api-go/config"
	"github.com/toptours/api-go/utils"
)

// UploadController hands out presigned R2 PUT URLs for the media the site
// accepts: travel-plan cover images and restaurant photos.
type UploadController struct {
	R2Client *s3.Client
	R2Config *config.R2Config
}

func NewUploadController(cfg *config.Config) *UploadController {
	r2 := &cfg.R2
	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			r2.AccessKeyID,
			r2.SecretAccessKey,
			"",
		),
		Region: r2.Region,
	})

	return &UploadController{R2Client: client, R2Config: r2}
}

type PresignedURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
	Purpose     string `json:"purpose" binding:"required,oneof=plan_cover restaurant_photo"`
}

type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

const maxImageSize = 10 * 1024 * 1024 // 10MB

// GetPresignedURL godoc
// @Summary Generate a presigned upload URL for an image
// @Tags uploads
// @Accept json
// @Produce json
// @Router /uploads/presign [post]
func (uc *UploadController) GetPresignedURL(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req PresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if !isValidImageType(req.ContentType) {
		respondError(c, http.StatusBadRequest, "Invalid image content type")
		return
	}
	if req.FileSize > maxImageSize {
		respondError(c, http.StatusBadRequest, "File size exceeds limit")
		return
	}

	key := uc.generateFileKey(user.UserID, req.FileName, req.Purpose)

	presignedURL, err := uc.createPresignedURL(c, key, req.ContentType)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create upload URL")
		return
	}

	respondOK(c, PresignedURLResponse{
		UploadURL: presignedURL,
		FileURL:   fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, key),
		Key:       key,
		ExpiresIn: 3600,
	})
}

// DeleteFile removes an uploaded image. Ownership is derived from the key
// layout, so callers can only delete their own uploads.
func (uc *UploadController) DeleteFile(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		respondError(c, http.StatusBadRequest, "File key is required")
		return
	}

	if !verifyFileOwnership(key, user.UserID) {
		respondError(c, http.StatusForbidden, "Access denied")
		return
	}

	input := &s3.DeleteObjectInput{
		Bucket: aws.String(uc.R2Config.BucketName),
		Key:    aws.String(key),
	}
	if _, err := uc.R2Client.DeleteObject(c.Request.Context(), input); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to delete file")
		return
	}

	respondOK(c, gin.H{"deleted": true})
}

func isValidImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/webp":
		return true
	}
	return false
}

func (uc *UploadController) generateFileKey(userID, fileName, purpose string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("uploads/%s/%s/%d_%s%s", purpose, userID, time.Now().Unix(), uuid.New().String(), ext)
}

func (uc *UploadController) createPresignedURL(c *gin.Context, key, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(uc.R2Config.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presigner := s3.NewPresignClient(uc.R2Client)
	req, err := presigner.PresignPutObject(c.Request.Context(), input, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// Key layout: uploads/{purpose}/{userID}/{timestamp}_{uuid}.{ext}
func verifyFileOwnership(key, userID string) bool {
	parts := strings.Split(key, "/")
	if len(parts) < 3 {
		return false
	}
	return parts[2] == userID
}
