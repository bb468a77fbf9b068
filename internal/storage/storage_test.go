package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonto42/snapgram/backend/internal/errs"
)

func TestBuildPreviewURL(t *testing.T) {
	url, err := BuildPreviewURL("https://media.snapgram.app/v1", "snapgram-media", "file-123")
	require.NoError(t, err)

	assert.Equal(t,
		"https://media.snapgram.app/v1/buckets/snapgram-media/files/file-123/preview?gravity=top&height=2000&quality=100&width=2000",
		url)
}

func TestBuildPreviewURLIsDeterministic(t *testing.T) {
	a, err := BuildPreviewURL("https://media.snapgram.app/v1/", "b", "f")
	require.NoError(t, err)
	b, err := BuildPreviewURL("https://media.snapgram.app/v1", "b", "f")
	require.NoError(t, err)
	assert.Equal(t, a, b, "trailing slash must not change the result")
}

func TestBuildPreviewURLRequiresFileID(t *testing.T) {
	_, err := BuildPreviewURL("https://media.snapgram.app/v1", "b", "")
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestInitialsAvatarURL(t *testing.T) {
	url := InitialsAvatarURL("https://avatars.snapgram.app/api", "Ada Lovelace")
	assert.Equal(t, "https://avatars.snapgram.app/api/?name=Ada+Lovelace", url)
}

func TestInitialsAvatarURLEscapesName(t *testing.T) {
	url := InitialsAvatarURL("https://avatars.snapgram.app/api", "A&B <C>")
	assert.NotContains(t, url, "&B")
	assert.NotContains(t, url, "<")
}

func TestNewFileIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewFileID()
		require.NotEmpty(t, id)
		assert.False(t, seen[id])
		seen[id] = true
	}
}
