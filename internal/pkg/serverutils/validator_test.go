package serverutils

import (
	"testing"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequest(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := ValidateRequest(dto.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
		assert.NoError(t, err)
	})

	t.Run("missing field", func(t *testing.T) {
		err := ValidateRequest(dto.RegisterRequest{Email: "alice@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, apperror.ErrValidation)
		assert.Equal(t, "name is required", err.Error())
	})

	t.Run("bad email", func(t *testing.T) {
		err := ValidateRequest(dto.RegisterRequest{Name: "Alice", Email: "nope", Password: "secret1"})
		assert.ErrorIs(t, err, apperror.ErrValidation)
		assert.Equal(t, "email must be a valid email address", err.Error())
	})

	t.Run("short password", func(t *testing.T) {
		err := ValidateRequest(dto.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "123"})
		assert.ErrorIs(t, err, apperror.ErrValidation)
		assert.Equal(t, "password must be at least 6 characters", err.Error())
	})

	t.Run("title too long", func(t *testing.T) {
		long := make([]byte, 101)
		for i := range long {
			long[i] = 'a'
		}
		err := ValidateRequest(dto.CreateNoteRequest{Title: string(long), Content: "c"})
		assert.ErrorIs(t, err, apperror.ErrValidation)
		assert.Equal(t, "title must be at most 100 characters", err.Error())
	})
}
