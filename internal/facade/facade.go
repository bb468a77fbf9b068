// Package facade is the data-access layer the application talks to: one
// method per use case, each a short sequence of provider calls. Multi-step
// image operations clean up their own uploads on failure; nothing here
// retries, caches or spans providers transactionally.
package facade

import (
	"strings"

	"github.com/anonto42/snapgram/backend/internal/accounts"
	"github.com/anonto42/snapgram/backend/internal/repositories"
	"github.com/anonto42/snapgram/backend/internal/storage"
)

const (
	recentPostsLimit = 20
	infinitePageSize = 10
)

// Facade wires the account service, document repositories and blob store
// behind the per-use-case methods.
type Facade struct {
	accounts accounts.Service
	users    repositories.UserRepository
	posts    repositories.PostRepository
	saved    repositories.SavedPostRepository
	blobs    storage.BlobStore

	avatarEndpoint string
}

// New creates a Facade from its providers. avatarEndpoint is the base URL of
// the initials-avatar service.
func New(
	accountsSvc accounts.Service,
	users repositories.UserRepository,
	posts repositories.PostRepository,
	saved repositories.SavedPostRepository,
	blobs storage.BlobStore,
	avatarEndpoint string,
) *Facade {
	return &Facade{
		accounts:       accountsSvc,
		users:          users,
		posts:          posts,
		saved:          saved,
		blobs:          blobs,
		avatarEndpoint: avatarEndpoint,
	}
}

// NewUser is the draft for account creation.
type NewUser struct {
	Name     string
	Email    string
	Username string
	Password string
}

// NewPost is the draft for post creation. File holds the attached image.
type NewPost struct {
	CreatorID string
	Caption   string
	Location  string
	Tags      string // free-text comma-separated
	File      []byte
	FileType  string
}

// PostEdit is the draft for a post update. ImageURL/ImageID carry the current
// image reference; a non-empty File replaces it.
type PostEdit struct {
	PostID   string
	Caption  string
	Location string
	Tags     string
	ImageURL string
	ImageID  string
	File     []byte
	FileType string
}

// ProfileEdit is the draft for a profile update, same image semantics as
// PostEdit.
type ProfileEdit struct {
	UserID   string
	Name     string
	Username string
	Bio      string
	ImageURL string
	ImageID  string
	File     []byte
	FileType string
}

// normalizeTags turns free-text comma-separated input into an ordered list
// of non-empty tags with all whitespace stripped. Empty input yields an
// empty list, never nil.
func normalizeTags(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		tag := strings.Join(strings.Fields(part), "")
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
