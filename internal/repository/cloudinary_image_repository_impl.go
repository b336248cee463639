package repository

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"

	circuitbreaker "github.com/alimikegami/point-of-sales/catalog-service/internal/infrastructure/circuit-breaker"
)

// uploaderAPI is the subset of the Cloudinary upload API the catalog uses.
type uploaderAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// CloudinaryImageRepositoryImpl guards uploads and deletes with separate
// breakers, so failing best-effort deletes never block creates.
type CloudinaryImageRepositoryImpl struct {
	uploader  uploaderAPI
	uploadCB  *gobreaker.CircuitBreaker[string]
	destroyCB *gobreaker.CircuitBreaker[string]
}

func CreateNewCloudinaryImageRepository(cld *cloudinary.Cloudinary, uploadCB, destroyCB *gobreaker.CircuitBreaker[string]) ImageRepository {
	return &CloudinaryImageRepositoryImpl{uploader: &cld.Upload, uploadCB: uploadCB, destroyCB: destroyCB}
}

func (r *CloudinaryImageRepositoryImpl) UploadImage(ctx context.Context, payload string, folder string) (url string, err error) {
	url, err = r.uploadCB.Execute(func() (string, error) {
		result, err := r.uploader.Upload(ctx, payload, uploader.UploadParams{Folder: folder})
		if err != nil {
			return "", err
		}

		if result.Error.Message != "" {
			return "", fmt.Errorf("%w: %s", circuitbreaker.ErrRejected, result.Error.Message)
		}

		return result.SecureURL, nil
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UploadImage").Msg("")
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return url, nil
}

func (r *CloudinaryImageRepositoryImpl) DeleteImage(ctx context.Context, publicID string) (err error) {
	_, err = r.destroyCB.Execute(func() (string, error) {
		result, err := r.uploader.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
		if err != nil {
			return "", err
		}

		if result.Error.Message != "" {
			return "", fmt.Errorf("%w: %s", circuitbreaker.ErrRejected, result.Error.Message)
		}

		return result.Result, nil
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteImage").Str("public_id", publicID).Msg("")
		return fmt.Errorf("failed to delete image %s: %w", publicID, err)
	}

	return nil
}
