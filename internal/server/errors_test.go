package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/schemas"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", &ErrResumeNotFound{ID: uuid.New()}, http.StatusNotFound},
		{"locked", &ErrResumeLocked{ID: uuid.New()}, http.StatusConflict},
		{"slug taken", &ErrSlugTaken{Slug: "cv"}, http.StatusConflict},
		{"conflict", &ErrConflict{ID: uuid.New()}, http.StatusConflict},
		{"need password", &ErrNeedPassword{}, http.StatusUnauthorized},
		{"invalid password", &ErrInvalidPassword{}, http.StatusUnauthorized},
		{"validation", &ErrValidation{Field: "name", Message: "required"}, http.StatusBadRequest},
		{"invalid document", &ErrInvalidDocument{Err: &schemas.ValidationError{}}, http.StatusUnprocessableEntity},
		{"item not found", fmt.Errorf("move: %w", editor.ErrItemNotFound), http.StatusNotFound},
		{"section not found", editor.ErrSectionNotFound, http.StatusNotFound},
		{"incompatible", editor.ErrIncompatibleTarget, http.StatusUnprocessableEntity},
		{"page out of range", layout.ErrPageOutOfRange, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	id := uuid.MustParse("0190a7e2-0000-7000-8000-000000000001")

	assert.Equal(t, "resume not found: 0190a7e2-0000-7000-8000-000000000001", (&ErrResumeNotFound{ID: id}).Error())
	assert.Equal(t, "resume not found: my-cv", (&ErrResumeNotFound{Slug: "my-cv"}).Error())
	assert.Equal(t, "slug already in use: my-cv", (&ErrSlugTaken{Slug: "my-cv"}).Error())
	assert.Equal(t, "validation error: name - is required", (&ErrValidation{Field: "name", Message: "is required"}).Error())

	inner := &schemas.ValidationError{}
	wrapped := &ErrInvalidDocument{Err: inner}
	var ve *schemas.ValidationError
	assert.True(t, errors.As(wrapped, &ve))
}
