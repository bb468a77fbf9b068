package facade

import (
	"context"

	"github.com/anonto42/snapgram/backend/internal/errs"
	"github.com/anonto42/snapgram/backend/internal/models"
)

// CreatePost uploads the attached image, derives its preview URL and writes
// the post document. If the preview step or the document write fails the
// uploaded file is deleted before the error is returned.
func (f *Facade) CreatePost(ctx context.Context, draft NewPost) (*models.Post, error) {
	const op = "facade.CreatePost"
	if draft.CreatorID == "" {
		return nil, errs.Errorf(op, errs.KindValidation, "creator id is required")
	}
	if len(draft.File) == 0 {
		return nil, errs.Errorf(op, errs.KindValidation, "image file is required")
	}

	uploaded, err := f.UploadFile(ctx, draft.File, draft.FileType)
	if err != nil {
		return nil, err
	}

	previewURL, err := f.GetFilePreview(uploaded.ID)
	if err != nil {
		return nil, f.deleteUpload(ctx, op, uploaded.ID, err)
	}

	post := &models.Post{
		CreatorID: draft.CreatorID,
		Caption:   draft.Caption,
		ImageURL:  previewURL,
		ImageID:   uploaded.ID,
		Location:  draft.Location,
		Tags:      normalizeTags(draft.Tags),
		Likes:     []string{},
	}
	if err := f.posts.CreatePost(ctx, post); err != nil {
		return nil, f.deleteUpload(ctx, op, uploaded.ID, err)
	}
	return post, nil
}

// UpdatePost rewrites a post's mutable fields. A new attached file replaces
// the image reference; otherwise the existing one is kept. On a failed
// document write whichever image id the edit currently carries is deleted.
// On success no old-image cleanup happens, even when the image changed —
// callers relying on storage contents must account for that.
func (f *Facade) UpdatePost(ctx context.Context, edit PostEdit) (*models.Post, error) {
	const op = "facade.UpdatePost"
	if edit.PostID == "" {
		return nil, errs.Errorf(op, errs.KindValidation, "post id is required")
	}

	imageURL, imageID := edit.ImageURL, edit.ImageID
	if len(edit.File) > 0 {
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

	post := &models.Post{
		Caption:  edit.Caption,
		ImageURL: imageURL,
		ImageID:  imageID,
		Location: edit.Location,
		Tags:     normalizeTags(edit.Tags),
	}
	if err := f.posts.UpdatePost(ctx, edit.PostID, post); err != nil {
		if imageID != "" {
			return nil, f.deleteUpload(ctx, op, imageID, err)
		}
		return nil, err
	}
	return f.posts.GetPostByID(ctx, edit.PostID)
}

// DeletePost deletes the post document, then its stored image. Both ids are
// required; nothing is deleted otherwise. A file-delete failure after the
// document is gone leaves an orphaned file and reports a compensation error.
func (f *Facade) DeletePost(ctx context.Context, postID, imageID string) error {
	const op = "facade.DeletePost"
	if postID == "" || imageID == "" {
		return errs.Errorf(op, errs.KindValidation, "post id and image id are required")
	}

	if err := f.posts.DeletePost(ctx, postID); err != nil {
		return err
	}
	if err := f.blobs.Delete(ctx, imageID); err != nil {
		return errs.Errorf(op, errs.KindCompensation,
			"post %s deleted but image %s was not: %v", postID, imageID, err)
	}
	return nil
}

// LikePost overwrites the post's likes set with the caller-supplied one.
// Last writer wins; concurrent likers can overwrite each other. AddLike and
// RemoveLike are the atomic alternative.
func (f *Facade) LikePost(ctx context.Context, postID string, likerIDs []string) (*models.Post, error) {
	const op = "facade.LikePost"
	if postID == "" {
		return nil, errs.Errorf(op, errs.KindValidation, "post id is required")
	}
	return f.posts.SetLikes(ctx, postID, likerIDs)
}

// AddLike adds a single user to the likes set atomically.
func (f *Facade) AddLike(ctx context.Context, postID, userID string) (*models.Post, error) {
	const op = "facade.AddLike"
	if postID == "" || userID == "" {
		return nil, errs.Errorf(op, errs.KindValidation, "post id and user id are required")
	}
	return f.posts.AddLike(ctx, postID, userID)
}

// RemoveLike removes a single user from the likes set atomically.
func (f *Facade) RemoveLike(ctx context.Context, postID, userID string) (*models.Post, error) {
	const op = "facade.RemoveLike"
	if postID == "" || userID == "" {
		return nil, errs.Errorf(op, errs.KindValidation, "post id and user id are required")
	}
	return f.posts.RemoveLike(ctx, postID, userID)
}

// SavePost creates a bookmark record joining a user and a post.
func (f *Facade) SavePost(ctx context.Context, postID, userID string) (*models.SavedPost, error) {
	const op = "facade.SavePost"
	if postID == "" || userID == "" {
		return nil, errs.Errorf(op, errs.KindValidation, "post id and user id are required")
	}
	saved := &models.SavedPost{UserID: userID, PostID: postID}
	if err := f.saved.CreateSavedPost(ctx, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// DeleteSavedPost removes a bookmark record.
func (f *Facade) DeleteSavedPost(ctx context.Context, recordID string) error {
	const op = "facade.DeleteSavedPost"
	if recordID == "" {
		return errs.Errorf(op, errs.KindValidation, "record id is required")
	}
	return f.saved.DeleteSavedPost(ctx, recordID)
}

// GetRecentPosts returns the newest 20 posts by creation time descending.
func (f *Facade) GetRecentPosts(ctx context.Context) ([]models.Post, error) {
	return f.posts.GetRecentPosts(ctx, recentPostsLimit)
}

// GetInfinitePosts returns a page of 10 posts by last-update descending. A
// non-empty cursor (the id of the last item seen) makes results start
// strictly after it.
func (f *Facade) GetInfinitePosts(ctx context.Context, cursor string) ([]models.Post, error) {
	return f.posts.GetInfinitePosts(ctx, cursor, infinitePageSize)
}

// SearchPosts runs the store's full-text search over captions.
func (f *Facade) SearchPosts(ctx context.Context, term string) ([]models.Post, error) {
	const op = "facade.SearchPosts"
	if term == "" {
		return nil, errs.Errorf(op, errs.KindValidation, "search term is required")
	}
	return f.posts.SearchPosts(ctx, term)
}

// GetPostByID looks up a single post.
func (f *Facade) GetPostByID(ctx context.Context, postID string) (*models.Post, error) {
	return f.posts.GetPostByID(ctx, postID)
}

// GetUserPosts returns a user's posts, newest first. An absent user id
// yields an empty result, not a failure.
func (f *Facade) GetUserPosts(ctx context.Context, userID string) ([]models.Post, error) {
	if userID == "" {
		return []models.Post{}, nil
	}
	return f.posts.GetPostsByCreator(ctx, userID)
}
