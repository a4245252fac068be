package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Pyrocube-Network/EconomyApi/internal/apperrors"
)

func TestAppError(t *testing.T) {
	cause := fmt.Errorf("%w: account 42", apperrors.ErrNotFound)
	err := apperrors.NewAppError("failed to begin transaction", cause)

	assert.Equal(t, "failed to begin transaction: resource not found: account 42", err.Error())
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.False(t, errors.Is(err, apperrors.ErrDuplicate))
}

func TestAppError_NilCause(t *testing.T) {
	err := apperrors.NewAppError("rollback", nil)
	assert.Equal(t, "rollback", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}
