package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies a failure so the HTTP layer can pick a status code.
type Kind int

const (
	Internal Kind = iota
	InvalidInput
	NotFound
	UnsupportedMedia
	Forbidden
	Upstream
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case NotFound:
		return "not_found"
	case UnsupportedMedia:
		return "unsupported_media"
	case Forbidden:
		return "forbidden"
	case Upstream:
		return "upstream"
	default:
		return "internal"
	}
}

// Error is a failure tagged with its Kind and the operation that produced it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op
	}
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func Errorf(kind Kind, op string, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the Kind of the outermost *Error in the chain, Internal otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case InvalidInput:
		return fiber.StatusBadRequest
	case NotFound:
		return fiber.StatusNotFound
	case UnsupportedMedia:
		return fiber.StatusUnsupportedMediaType
	case Forbidden:
		return fiber.StatusForbidden
	case Upstream:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
