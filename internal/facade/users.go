package facade

import (
	"context"
	"log"

	"github.com/anonto42/snapgram/backend/internal/errs"
	"github.com/anonto42/snapgram/backend/internal/models"
)

// GetUserByID looks up a single profile.
func (f *Facade) GetUserByID(ctx context.Context, userID string) (*models.UserProfile, error) {
	return f.users.GetProfileByID(ctx, userID)
}

// GetUsers lists profiles, newest first. A non-positive limit falls back to
// the store default.
func (f *Facade) GetUsers(ctx context.Context, limit int64) ([]models.UserProfile, error) {
	return f.users.GetProfiles(ctx, limit)
}

// GetSavedPosts returns a user's bookmark records, newest first.
func (f *Facade) GetSavedPosts(ctx context.Context, userID string) ([]models.SavedPost, error) {
	const op = "facade.GetSavedPosts"
	if userID == "" {
		return nil, errs.Errorf(op, errs.KindValidation, "user id is required")
	}
	return f.saved.GetSavedPostsByUser(ctx, userID)
}

// UpdateUser rewrites a profile's mutable fields. A new attached file
// replaces the avatar. On a failed document write the new upload is deleted
// so nothing orphans; on success the previous image is deleted, but only
// when a new one was uploaded.
func (f *Facade) UpdateUser(ctx context.Context, edit ProfileEdit) (*models.UserProfile, error) {
	const op = "facade.UpdateUser"
	if edit.UserID == "" {
		return nil, errs.Errorf(op, errs.KindValidation, "user id is required")
	}

	hasNewFile := len(edit.File) > 0
	imageURL, imageID := edit.ImageURL, edit.ImageID
	if hasNewFile {
		uploaded, err := f.UploadFile(ctx, edit.File, edit.FileType)
		if err != nil {
			return nil, err
		}
		previewURL, err := f.GetFilePreview(uploaded.ID)
		if err != nil {
			return nil, f.deleteUpload(ctx, op, uploaded.ID, err)
		}
		imageURL, imageID = previewURL, uploaded.ID
	}

	profile := &models.UserProfile{
		Name:     edit.Name,
		Username: edit.Username,
		Bio:      edit.Bio,
		ImageURL: imageURL,
		ImageID:  imageID,
	}
	if err := f.users.UpdateProfile(ctx, edit.UserID, profile); err != nil {
		if hasNewFile {
			return nil, f.deleteUpload(ctx, op, imageID, err)
		}
		return nil, err
	}

	// The replaced avatar is only reclaimed once the write has stuck. A
	// failed delete orphans the old file; the update itself stands.
	if hasNewFile && edit.ImageID != "" {
		if err := f.blobs.Delete(ctx, edit.ImageID); err != nil {
			log.Printf("%s: deleting replaced avatar %s failed: %v", op, edit.ImageID, err)
		}
	}

	return f.users.GetProfileByID(ctx, edit.UserID)
}
