package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/tennis-playability/internal/domain/playability"
	apperrors "github.com/yanqian/tennis-playability/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// fromDomainError maps controller failures onto statuses shared by the form and the API.
func fromDomainError(err error) *HTTPError {
	var (
		vErr   *playability.ValidationError
		reqErr *playability.RequestError
	)
	switch {
	case errors.As(err, &vErr):
		return NewHTTPError(http.StatusBadRequest, "invalid_request", vErr.Error(), err)
	case errors.As(err, &reqErr):
		return NewHTTPError(http.StatusBadGateway, "inference_failed", reqErr.Error(), err)
	case apperrors.IsCode(err, apperrors.CodeInvalidInput):
		return NewHTTPError(http.StatusBadRequest, "invalid_request", apperrors.MessageOf(err), err)
	case apperrors.IsCode(err, apperrors.CodeSessionError):
		return NewHTTPError(http.StatusInternalServerError, "session_error", apperrors.MessageOf(err), err)
	default:
		return asHTTPError(err)
	}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
