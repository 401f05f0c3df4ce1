package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Kind is the machine-readable classification surfaced to API clients.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindForbidden         Kind = "forbidden"
	KindConflict          Kind = "conflict"
	KindInsufficientStock Kind = "insufficient_stock"
	KindValidation        Kind = "validation"
	KindInternal          Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func InsufficientStock(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInsufficientStock, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected failure. The wrapped error is logged by
// Respond, never returned to the client.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func statusOf(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict, KindInsufficientStock:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as a structured JSON error. Unclassified errors are
// treated as internal.
func Respond(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = Internal("Something went wrong", err)
	}
	if e.Kind == KindInternal {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("internal error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{"kind": KindInternal, "message": "Internal Server Error"},
		})
		return
	}
	c.JSON(statusOf(e.Kind), gin.H{
		"error": gin.H{"kind": e.Kind, "message": e.Message},
	})
}
