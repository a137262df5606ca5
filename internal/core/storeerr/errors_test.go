package storeerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrappersKeepOriginalError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	err := Unavailable(cause)
	assert.True(t, IsUnavailable(err))
	assert.False(t, IsPermissionDenied(err))
	assert.ErrorIs(t, err, cause)

	err = PermissionDenied(cause)
	assert.True(t, IsPermissionDenied(err))
	assert.False(t, IsUnavailable(err))
	assert.ErrorIs(t, err, cause)
}

func TestWrappersNil(t *testing.T) {
	assert.NoError(t, Unavailable(nil))
	assert.NoError(t, PermissionDenied(nil))
}
