package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneMatchesOriginalByCode(t *testing.T) {
	err := Clone(ErrNotFound, "proposal not found or expired")

	assert.True(t, stdErrors.Is(err, ErrNotFound))
	assert.False(t, stdErrors.Is(err, ErrValidation))
	assert.Equal(t, "proposal not found or expired", err.Error())
}

func TestFromErrorWrapsUnknownErrors(t *testing.T) {
	appErr := FromError(fmt.Errorf("boom"))

	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Nil(t, FromError(nil))
}

func TestWrappedCacheMissIsDetectable(t *testing.T) {
	err := fmt.Errorf("lookup: %w", ErrCacheMiss)
	assert.True(t, stdErrors.Is(err, ErrCacheMiss))
}
