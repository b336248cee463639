package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	circuitbreaker "github.com/alimikegami/point-of-sales/catalog-service/internal/infrastructure/circuit-breaker"
)

type fakeUploader struct {
	uploadResult  *uploader.UploadResult
	destroyResult *uploader.DestroyResult
	err           error

	uploadParams  []uploader.UploadParams
	destroyParams []uploader.DestroyParams
}

func (f *fakeUploader) Upload(_ context.Context, _ interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error) {
	f.uploadParams = append(f.uploadParams, uploadParams)
	if f.err != nil {
		return nil, f.err
	}
	return f.uploadResult, nil
}

func (f *fakeUploader) Destroy(_ context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	f.destroyParams = append(f.destroyParams, params)
	if f.err != nil {
		return nil, f.err
	}
	return f.destroyResult, nil
}

func newCloudinaryRepo(fake *fakeUploader) *CloudinaryImageRepositoryImpl {
	return &CloudinaryImageRepositoryImpl{
		uploader:  fake,
		uploadCB:  circuitbreaker.CreateCircuitBreaker("cloudinary-upload-test"),
		destroyCB: circuitbreaker.CreateCircuitBreaker("cloudinary-destroy-test"),
	}
}

func TestUploadImage(t *testing.T) {
	fake := &fakeUploader{uploadResult: &uploader.UploadResult{SecureURL: "https://res.cloudinary.com/demo/image/upload/v1/products/abc.png"}}
	repo := newCloudinaryRepo(fake)

	url, err := repo.UploadImage(context.Background(), "data:image/png;base64,AA==", "products")
	require.NoError(t, err)

	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/v1/products/abc.png", url)
	require.Len(t, fake.uploadParams, 1)
	assert.Equal(t, "products", fake.uploadParams[0].Folder)
}

func TestUploadImage_ResultError(t *testing.T) {
	fake := &fakeUploader{uploadResult: &uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid image file"}}}
	repo := newCloudinaryRepo(fake)

	_, err := repo.UploadImage(context.Background(), "garbage", "products")
	require.Error(t, err)
	assert.ErrorIs(t, err, circuitbreaker.ErrRejected)
	assert.Contains(t, err.Error(), "Invalid image file")
}

func TestUploadImage_RejectedPayloadsKeepCircuitClosed(t *testing.T) {
	fake := &fakeUploader{uploadResult: &uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid image file"}}}
	repo := newCloudinaryRepo(fake)

	for i := 0; i < 5; i++ {
		_, err := repo.UploadImage(context.Background(), "garbage", "products")
		require.ErrorIs(t, err, circuitbreaker.ErrRejected)
	}

	fake.uploadResult = &uploader.UploadResult{SecureURL: "https://res.cloudinary.com/demo/image/upload/v1/products/ok.png"}
	url, err := repo.UploadImage(context.Background(), "data:image/png;base64,AA==", "products")
	require.NoError(t, err)

	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/v1/products/ok.png", url)
	assert.Len(t, fake.uploadParams, 6)
}

func TestUploadImage_UnaffectedByFailingDeletes(t *testing.T) {
	fake := &fakeUploader{err: errors.New("timeout")}
	repo := newCloudinaryRepo(fake)

	for i := 0; i < 3; i++ {
		require.Error(t, repo.DeleteImage(context.Background(), "products/abc123"))
	}
	require.ErrorIs(t, repo.DeleteImage(context.Background(), "products/abc123"), gobreaker.ErrOpenState)

	fake.err = nil
	fake.uploadResult = &uploader.UploadResult{SecureURL: "https://res.cloudinary.com/demo/image/upload/v1/products/ok.png"}
	_, err := repo.UploadImage(context.Background(), "data:image/png;base64,AA==", "products")
	require.NoError(t, err)
	assert.Len(t, fake.uploadParams, 1)
}

func TestDeleteImage(t *testing.T) {
	fake := &fakeUploader{destroyResult: &uploader.DestroyResult{Result: "ok"}}
	repo := newCloudinaryRepo(fake)

	require.NoError(t, repo.DeleteImage(context.Background(), "products/abc123"))
	require.Len(t, fake.destroyParams, 1)
	assert.Equal(t, "products/abc123", fake.destroyParams[0].PublicID)
}

func TestDeleteImage_OpensCircuitAfterRepeatedFailures(t *testing.T) {
	fake := &fakeUploader{err: errors.New("timeout")}
	repo := newCloudinaryRepo(fake)

	for i := 0; i < 3; i++ {
		err := repo.DeleteImage(context.Background(), "products/abc123")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeout")
	}

	err := repo.DeleteImage(context.Background(), "products/abc123")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Len(t, fake.destroyParams, 3)
}
