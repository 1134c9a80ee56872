package errors_test

import (
	"fmt"
	"testing"

	"codeberg.org/mutker/devconsole/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryMessages(t *testing.T) {
	f := errors.New()

	assert.Equal(t, "Invalid configuration", f.New(errors.ErrInvalidConfig).Error())
	assert.Equal(t, "custom_code", f.New("custom_code").Error())
	assert.Equal(t, "Operation failed: boom", f.Wrap(errors.ErrOperationFailed, fmt.Errorf("boom")).Error())
	assert.Equal(t, "Invalid argument provided: 42", f.WithData(errors.ErrInvalidArgument, 42).Error())
	assert.Equal(t, "nope", f.WithMessage(errors.ErrInternal, "nope").Error())
}

func TestWrapWithDataKeepsCause(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := errors.New().Wrap(errors.ErrOperationFailed, cause).WithData("phase=open")

	assert.Equal(t, "Operation failed: phase=open: root cause", err.Error())
	assert.Equal(t, "phase=open", err.GetData())
	assert.ErrorIs(t, err, cause)
}

func TestCodeOf(t *testing.T) {
	inner := errors.New().New(errors.ErrTimeout)
	outer := fmt.Errorf("waiting: %w", inner)

	code, ok := errors.CodeOf(outer)
	require.True(t, ok)
	assert.Equal(t, errors.ErrTimeout, code)

	_, ok = errors.CodeOf(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestHasCodeAndIs(t *testing.T) {
	f := errors.New()
	err := f.Wrap(errors.ErrInitApp, f.New(errors.ErrReadConfig))

	assert.True(t, errors.HasCode(err, errors.ErrReadConfig))
	assert.True(t, errors.HasCode(err, errors.ErrInitApp))
	assert.False(t, errors.HasCode(err, errors.ErrTimeout))
	assert.True(t, errors.Is(err, f.New(errors.ErrReadConfig)))
}
