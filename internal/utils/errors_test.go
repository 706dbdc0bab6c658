package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", E(CodeInvalidArgument, "op", "bad", nil), http.StatusBadRequest},
		{"configuration", E(CodeConfiguration, "op", "GROQ API key is not configured.", nil), http.StatusInternalServerError},
		{"upstream", E(CodeUpstream, "op", "Groq API error: rate limited", nil), http.StatusInternalServerError},
		{"conflict", E(CodeConflict, "op", "dup", nil), http.StatusConflict},
		{"wrapped not found sentinel", fmt.Errorf("lookup: %w", ErrNotFound), http.StatusNotFound},
		{"conflict sentinel", ErrConflict, http.StatusConflict},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	err := E(CodeNotFound, "ProfileService.GetMe", "profile not found", ErrNotFound)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsCode(err, CodeNotFound))
	assert.Equal(t, "ProfileService.GetMe: profile not found: not found", err.Error())
	assert.Equal(t, "profile not found", MessageOf(err))
	assert.Equal(t, "boom", MessageOf(errors.New("boom")))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("other")))
}
