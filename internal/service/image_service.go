package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"blogHub/internal/auth"
	"blogHub/internal/config"
	"blogHub/internal/models"
	"blogHub/internal/repository"
	"blogHub/internal/storage"
)

type ImageService interface {
	Upload(ctx context.Context, actor *auth.Actor, fileName string, file io.Reader, size int64, contentType string) (*models.Image, error)
	Delete(ctx context.Context, actor *auth.Actor, objectName string) error
}

type imageService struct {
	imageRepo repository.ImageRepository
	storage   storage.Storage
	cfg       *config.Config
}

func NewImageService(imageRepo repository.ImageRepository, storage storage.Storage, cfg *config.Config) ImageService {
	return &imageService{
		imageRepo: imageRepo,
		storage:   storage,
		cfg:       cfg,
	}
}

// Upload stores an image in the bucket and records who uploaded it.
func (s *imageService) Upload(ctx context.Context, actor *auth.Actor, fileName string, file io.Reader, size int64, contentType string) (*models.Image, error) {
	if actor == nil {
		return nil, newError(ErrUnauthorized, "authentication required")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, newError(ErrValidation, "only image files are allowed")
	}
	if size <= 0 || size > s.cfg.MaxUploadSize {
		return nil, newError(ErrValidation, "image must be between 1 byte and %d bytes", s.cfg.MaxUploadSize)
	}

	objectName, imageURL, err := s.storage.UploadImage(ctx, actor.UserID, fileName, file, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	image := &models.Image{
		UploaderID: actor.UserID,
		ObjectName: objectName,
		ImageURL:   imageURL,
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		if delErr := s.storage.DeleteImage(ctx, objectName); delErr != nil {
			log.Printf("Failed to remove orphaned object %s: %v", objectName, delErr)
		}
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	return image, nil
}

// Delete removes an upload; only its uploader and admins may do so.
func (s *imageService) Delete(ctx context.Context, actor *auth.Actor, objectName string) error {
	image, err := s.imageRepo.GetByObjectName(ctx, objectName)
	if err != nil {
		return notFoundOr(err, "image")
	}
	if !actor.CanModify(image.UploaderID) {
		return newError(ErrForbidden, "not authorized to delete this image")
	}

	if err := s.storage.DeleteImage(ctx, image.ObjectName); err != nil {
		log.Printf("Failed to delete object %s from storage: %v", image.ObjectName, err)
	}

	if err := s.imageRepo.Delete(ctx, image.ImageID); err != nil {
		return notFoundOr(err, "image")
	}
	return nil
}
