package models

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestErrorStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidationError("bad input"), fiber.StatusBadRequest},
		{"not found", NewNotFoundError("Post", 42), fiber.StatusNotFound},
		{"unauthorized", NewUnauthorizedError("no token"), fiber.StatusUnauthorized},
		{"forbidden", NewForbiddenError("not yours"), fiber.StatusForbidden},
		{"internal", NewInternalError(fmt.Errorf("boom")), fiber.StatusInternalServerError},
		{"raw gorm sentinel", gorm.ErrRecordNotFound, fiber.StatusNotFound},
		{"wrapped gorm sentinel", fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), fiber.StatusNotFound},
		{"unknown error", fmt.Errorf("boom"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ErrorStatus(tc.err))
		})
	}
}

func TestNotFoundErrorCarriesCode(t *testing.T) {
	t.Parallel()

	err := NewNotFoundError("Comment", 7)
	assert.Equal(t, CodeNotFound, err.Code)
	assert.Contains(t, err.Error(), "Comment")
	assert.Contains(t, err.Error(), "7")
}
