// Package errs carries the error taxonomy shared by all services.
// Every failure a service returns is tagged with a Kind; controllers
// translate kinds to their fixed HTTP status codes.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	NotFound       Kind = "NOT_FOUND"
	Validation     Kind = "VALIDATION"
	StatusConflict Kind = "STATUS_CONFLICT"
	InvalidRequest Kind = "INVALID_REQUEST"
	AlreadyExists  Kind = "ALREADY_EXISTS"

	// Authorization marks permission failures. The API surfaces them as
	// not-found so callers cannot probe for resources they are not part of.
	Authorization Kind = "AUTHORIZATION"
)

type kindError struct {
	kind Kind
	msg  string
}

func (e kindError) Error() string { return e.msg }
func (e kindError) Kind() Kind    { return e.kind }

func New(k Kind, msg string) error { return kindError{kind: k, msg: msg} }

func Newf(k Kind, format string, args ...any) error {
	return kindError{kind: k, msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind tag, or "" for untagged errors.
func KindOf(err error) Kind {
	var ke interface{ Kind() Kind }
	if errors.As(err, &ke) {
		return ke.Kind()
	}
	return ""
}

// HTTPStatus maps a kind to the one status code the API exposes for it.
func HTTPStatus(k Kind) int {
	switch k {
	case NotFound, Authorization:
		return http.StatusNotFound
	case Validation, InvalidRequest:
		return http.StatusBadRequest
	case StatusConflict, AlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
