// Package storage provides the blob store the media helper runs against and
// the deterministic URL builders for previews and initials avatars.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/anonto42/snapgram/backend/internal/errs"
	"github.com/anonto42/snapgram/backend/internal/models"
)

// Fixed preview rendering parameters.
const (
	previewWidth   = 2000
	previewHeight  = 2000
	previewGravity = "top"
	previewQuality = 100
)

// BlobStore defines the interface for binary object operations
type BlobStore interface {
	Upload(ctx context.Context, id string, data []byte, contentType string) (*models.StoredFile, error)
	// PreviewURL builds the preview URL for a stored file. Pure string
	// construction, no network round-trip.
	PreviewURL(fileID string) (string, error)
	// Delete removes a stored file. Deleting an already-absent file succeeds.
	Delete(ctx context.Context, fileID string) error
}

// NewFileID returns a generated unique identifier for an upload.
func NewFileID() string {
	return uuid.NewString()
}

// GCSBlobStore implements BlobStore on a Google Cloud Storage bucket
type GCSBlobStore struct {
	bucket          *gcs.BucketHandle
	bucketName      string
	previewEndpoint string
}

// NewGCSBlobStore creates a new GCSBlobStore. previewEndpoint is the base URL
// of the media delivery service previews are served from.
func NewGCSBlobStore(bucket *gcs.BucketHandle, bucketName, previewEndpoint string) *GCSBlobStore {
	return &GCSBlobStore{
		bucket:          bucket,
		bucketName:      bucketName,
		previewEndpoint: strings.TrimSuffix(previewEndpoint, "/"),
	}
}

// Upload writes data to the bucket under the given id
func (s *GCSBlobStore) Upload(ctx context.Context, id string, data []byte, contentType string) (*models.StoredFile, error) {
	const op = "storage.Upload"
	if id == "" {
		return nil, errs.Errorf(op, errs.KindValidation, "file id is required")
	}

	w := s.bucket.Object(id).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, errs.E(op, errs.KindTransient, err)
	}
	if err := w.Close(); err != nil {
		return nil, errs.E(op, errs.KindTransient, err)
	}

	return &models.StoredFile{
		ID:          id,
		ContentType: contentType,
		Size:        int64(len(data)),
		CreatedAt:   time.Now(),
	}, nil
}

// PreviewURL builds the deterministic preview URL for a stored file
func (s *GCSBlobStore) PreviewURL(fileID string) (string, error) {
	return BuildPreviewURL(s.previewEndpoint, s.bucketName, fileID)
}

// Delete removes a stored file from the bucket. A missing object is treated
// as success so repeated compensating deletes stay idempotent.
func (s *GCSBlobStore) Delete(ctx context.Context, fileID string) error {
	const op = "storage.Delete"
	if fileID == "" {
		return errs.Errorf(op, errs.KindValidation, "file id is required")
	}
	if err := s.bucket.Object(fileID).Delete(ctx); err != nil {
		if err == gcs.ErrObjectNotExist {
			return nil
		}
		return errs.E(op, errs.KindTransient, err)
	}
	return nil
}

// BuildPreviewURL builds the preview URL for a file id with the fixed
// rendering parameters (2000x2000, top crop, quality 100).
func BuildPreviewURL(endpoint, bucket, fileID string) (string, error) {
	if fileID == "" {
		return "", errs.Errorf("storage.BuildPreviewURL", errs.KindValidation, "file id is required")
	}
	q := url.Values{}
	q.Set("width", fmt.Sprint(previewWidth))
	q.Set("height", fmt.Sprint(previewHeight))
	q.Set("gravity", previewGravity)
	q.Set("quality", fmt.Sprint(previewQuality))
	return fmt.Sprintf("%s/buckets/%s/files/%s/preview?%s",
		strings.TrimSuffix(endpoint, "/"), url.PathEscape(bucket), url.PathEscape(fileID), q.Encode()), nil
}

// InitialsAvatarURL builds the deterministic initials-avatar URL for a
// display name. No upload happens; the avatar service renders on demand.
func InitialsAvatarURL(endpoint, name string) string {
	q := url.Values{}
	q.Set("name", name)
	return strings.TrimSuffix(endpoint, "/") + "/?" + q.Encode()
}
