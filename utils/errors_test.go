package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrNotFound, http.StatusNotFound},
		{ErrBadRequest, http.StatusBadRequest},
		{ErrConflict, http.StatusConflict},
		{ErrUpstream, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, StatusFor(tc.err))
	}
}

func TestStatusForWrapped(t *testing.T) {
	err := fmt.Errorf("model 42: %w", ErrNotFound)
	assert.Equal(t, http.StatusNotFound, StatusFor(err))

	err = fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", ErrConflict))
	assert.Equal(t, http.StatusConflict, StatusFor(err))
}
