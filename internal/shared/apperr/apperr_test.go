package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid", InvalidErr("bad", nil), http.StatusBadRequest},
		{"not found", NotFoundErr("missing"), http.StatusNotFound},
		{"conflict", ConflictErr("taken", nil), http.StatusConflict},
		{"wrapped internal", Wrap(errors.New("boom")), http.StatusInternalServerError},
		{"wrapped twice", fmt.Errorf("handler: %w", NotFoundErr("missing")), http.StatusNotFound},
		{"plain error", errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessageHidesInternalCause(t *testing.T) {
	err := Wrap(errors.New("dial tcp 10.0.0.1:3306: refused"))
	assert.Equal(t, genericMsg, PublicMessage(err))
	assert.Contains(t, err.Error(), "refused")
	assert.Equal(t, "Product not found.", PublicMessage(NotFoundErr("Product not found.")))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil))
}
