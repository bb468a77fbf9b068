package facade

import (
	"context"
	"fmt"
	"log"

	"github.com/anonto42/snapgram/backend/internal/errs"
	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/storage"
)

// UploadFile stores a binary blob under a generated unique id.
func (f *Facade) UploadFile(ctx context.Context, data []byte, contentType string) (*models.StoredFile, error) {
	const op = "facade.UploadFile"
	if len(data) == 0 {
		return nil, errs.Errorf(op, errs.KindValidation, "file content is empty")
	}
	return f.blobs.Upload(ctx, storage.NewFileID(), data, contentType)
}

// GetFilePreview builds the deterministic preview URL for a stored file id.
func (f *Facade) GetFilePreview(fileID string) (string, error) {
	return f.blobs.PreviewURL(fileID)
}

// DeleteFile removes a stored file. Deleting an absent file succeeds.
func (f *Facade) DeleteFile(ctx context.Context, fileID string) error {
	return f.blobs.Delete(ctx, fileID)
}

// deleteUpload is the compensating action for a failed later step: it removes
// the file uploaded earlier in the sequence. If the cleanup itself fails the
// caller gets a compensation-kind error so the orphan is visible, wrapping
// the original cause.
func (f *Facade) deleteUpload(ctx context.Context, op, fileID string, cause error) error {
	if err := f.blobs.Delete(ctx, fileID); err != nil {
		log.Printf("%s: compensating delete of file %s failed: %v", op, fileID, err)
		return errs.E(op, errs.KindCompensation,
			fmt.Errorf("cleanup of file %s failed after: %w", fileID, cause))
	}
	return cause
}
