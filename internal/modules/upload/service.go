package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"carhive/internal/domain"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

const maxImageSize = 10 << 20 // 10 MB

var (
	ErrNotFound     = errors.New("car not found")
	ErrForbidden    = errors.New("forbidden")
	ErrBadImage     = errors.New("unsupported or oversized image")
	ErrStoreFailure = errors.New("object storage failure")
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type CarRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
	AppendImages(ctx context.Context, carID int64, urls []string) (*domain.Car, error)
}

// Store is the object storage surface the service needs.
type Store interface {
	PutObject(ctx context.Context, bucket, key string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	Bucket() string
	URLFor(key string) string
}

type Service struct {
	cars  CarRepositoryInterface
	store Store
}

func NewService(cars CarRepositoryInterface, store Store) *Service {
	return &Service{cars: cars, store: store}
}

// UploadCarImages stores the files and appends their URLs to the car.
// Only the owning agency may upload.
func (s *Service) UploadCarImages(ctx context.Context, agencyID, carID int64, files []*multipart.FileHeader) (*domain.Car, error) {
	car, err := s.cars.GetByID(ctx, carID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get car: %w", err)
	}
	if car.AgencyID != agencyID {
		return nil, ErrForbidden
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := s.storeOne(ctx, carID, fh)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	updated, err := s.cars.AppendImages(ctx, carID, urls)
	if err != nil {
		return nil, fmt.Errorf("append images: %w", err)
	}
	return updated, nil
}

func (s *Service) storeOne(ctx context.Context, carID int64, fh *multipart.FileHeader) (string, error) {
	if fh.Size <= 0 || fh.Size > maxImageSize {
		return "", ErrBadImage
	}

	contentType := fh.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		// Fall back to the filename extension for clients that omit the type.
		ext = strings.ToLower(filepath.Ext(fh.Filename))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
			return "", ErrBadImage
		}
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	key := fmt.Sprintf("cars/%d/%s%s", carID, uuid.NewString(), ext)
	_, err = s.store.PutObject(ctx, s.store.Bucket(), key, f, fh.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", ErrStoreFailure
	}

	return s.store.URLFor(key), nil
}
