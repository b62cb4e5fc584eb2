package services

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// CloudinaryStorage stores avatars in a Cloudinary folder.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStorage(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld, folder: folder}, nil
}

func (s *CloudinaryStorage) Save(ctx context.Context, file io.Reader, filename string) (string, error) {
	publicID := uuid.New().String()
	uploadResult, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to Cloudinary: %w", filename, err)
	}
	if uploadResult.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected %s: %s", filename, uploadResult.Error.Message)
	}
	return uploadResult.SecureURL, nil
}
