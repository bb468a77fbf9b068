package models

import "time"

// StoredFile describes a binary object held by the blob store. Posts and
// profiles reference it by ID; the preview URL is derived, not stored here.
type StoredFile struct {
	ID          string    `json:"id"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}
