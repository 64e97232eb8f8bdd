// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/fastpurchase/backend/internal/config"
)

const (
	maxImageSize = 5 << 20 // 5 MB
	imageFolder  = "products"
)

var allowedImageTypes = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// StorageService uploads product images to S3. It is a commodity
// integration: the catalog only ever stores the returned URLs.
type StorageService struct {
	s3Client *s3.S3
	cfg      *config.Config
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// No credentials configured; uploads will be rejected.
		return &StorageService{cfg: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		cfg:      cfg,
	}, nil
}

// UploadProductImages uploads each file and returns the resulting URLs, in
// the order the files were supplied.
func (s *StorageService) UploadProductImages(files []*multipart.FileHeader) ([]string, error) {
	if s.s3Client == nil {
		return nil, NewInternalError(nil, "Image storage is not configured")
	}
	if len(files) == 0 {
		return nil, NewValidationError("Validation failed", "At least one image file is required")
	}

	urls := make([]string, 0, len(files))
	for _, header := range files {
		url, err := s.uploadImage(header)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	return urls, nil
}

func (s *StorageService) uploadImage(header *multipart.FileHeader) (string, error) {
	if header.Size > maxImageSize {
		return "", NewValidationError("Validation failed",
			fmt.Sprintf("File %s exceeds the maximum allowed size of %d bytes", header.Filename, maxImageSize))
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, allowedType := range allowedImageTypes {
		if ext == allowedType {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", NewValidationError("Validation failed",
			fmt.Sprintf("File type %s is not allowed", ext))
	}

	file, err := header.Open()
	if err != nil {
		return "", NewInternalError(err, "An error occurred while reading the uploaded file")
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", NewInternalError(err, "An error occurred while reading the uploaded file")
	}

	key := fmt.Sprintf("%s/%d_%s%s", imageFolder, time.Now().Unix(), uuid.New().String(), ext)

	_, err = s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(header.Header.Get("Content-Type")),
		ContentLength: aws.Int64(int64(len(fileBytes))),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", NewInternalError(err, "An error occurred while uploading the image")
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.AWS.S3Bucket, s.cfg.AWS.Region, key), nil
}
