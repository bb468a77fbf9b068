package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := Errorf("facade.DeletePost", KindValidation, "post id is required")
	assert.Equal(t, KindValidation, KindOf(err))
	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
}

func TestKindOfWrapped(t *testing.T) {
	inner := Errorf("repositories.GetPostByID", KindNotFound, "post abc not found")
	wrapped := fmt.Errorf("loading post: %w", inner)
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, IsNotFound(wrapped))
}

func TestKindOfOutermostWins(t *testing.T) {
	cause := Errorf("repositories.CreatePost", KindTransient, "write rejected")
	comp := E("facade.CreatePost", KindCompensation, fmt.Errorf("cleanup failed after: %w", cause))
	assert.Equal(t, KindCompensation, KindOf(comp))
	assert.True(t, errors.Is(comp, cause), "the original cause must stay in the wrap chain")
	assert.ErrorContains(t, comp, "write rejected")
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestErrorString(t *testing.T) {
	withCause := E("facade.SignIn", KindUnauthorized, errors.New("bad password"))
	assert.Equal(t, "facade.SignIn: unauthorized: bad password", withCause.Error())

	bare := &Error{Kind: KindNotFound, Op: "facade.GetPostByID"}
	assert.Equal(t, "facade.GetPostByID: not found", bare.Error())
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "transient", KindTransient.String())
	assert.Equal(t, "compensation", KindCompensation.String())
	assert.Equal(t, "conflict", KindConflict.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
