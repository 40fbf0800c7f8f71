package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&ValidationError{Fields: []string{"name"}}, http.StatusBadRequest},
		{&NotFoundError{Resource: "order", ID: "x"}, http.StatusNotFound},
		{&ConflictError{Msg: "duplicate email"}, http.StatusConflict},
		{&TransientIOError{Op: "write", Err: errors.New("disk")}, http.StatusInternalServerError},
		{&NotificationError{Channel: "email", Err: errors.New("smtp")}, http.StatusBadGateway},
		{errors.New("anything else"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%T) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestHTTPStatusWrapped(t *testing.T) {
	err := fmt.Errorf("while placing order: %w", &NotFoundError{Resource: "product", ID: "9"})
	if got := HTTPStatus(err); got != http.StatusNotFound {
		t.Errorf("HTTPStatus(wrapped) = %d, want 404", got)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: []string{"name", "phone"}}
	want := "missing required fields: name, phone"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
