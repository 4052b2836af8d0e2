// internal/apperrors/errors_test.go
package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := Authorization("not allowed")
	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KindAuthorization, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", InvalidState("already sold"))
	assert.True(t, IsKind(err, KindInvalidState))
	assert.False(t, IsKind(err, KindValidation))
}

func TestTransportWrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Transport(cause)

	assert.True(t, IsKind(err, KindTransport))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestValidationCarriesCode(t *testing.T) {
	err := Validation("ROLE_MISMATCH", "wrong recipient role")

	var appErr *Error
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "ROLE_MISMATCH", appErr.Code)
	assert.Equal(t, KindValidation, appErr.Kind)
}
