package util

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/fadilmartias/resume-matcher/internal/apperr"
	"github.com/fadilmartias/resume-matcher/internal/response"
	"github.com/gofiber/fiber/v2"
)

// ExposeErrorsKey is the fiber local that enables dev_message and trace in
// error responses. It is set by middleware.ExposeErrors.
const ExposeErrorsKey = "expose_errors"

type SuccessResponseFormat struct {
	Code       int
	Message    string
	Data       any
	Pagination *response.Pagination
	Meta       any
}

type OrderedSuccessResponse struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Meta       any                  `json:"meta,omitempty"`
	Pagination *response.Pagination `json:"pagination,omitempty"`
	Data       any                  `json:"data,omitempty"`
}

type ErrorResponseFormat struct {
	Code       int
	Message    string
	DevMessage string
	Details    any
	Trace      string
}

type OrderedErrorResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Kind       string `json:"kind,omitempty"`
	DevMessage string `json:"dev_message,omitempty"`
	Details    any    `json:"details,omitempty"`
	Trace      string `json:"trace,omitempty"`
}

type FormError struct {
	Errors  map[string]string
	Message string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("form error: %s", e.Message)
}

func NewFormError(message string, errors map[string]string) *FormError {
	return &FormError{
		Message: message,
		Errors:  errors,
	}
}

// SuccessResponse writes the standard success envelope.
func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	response := OrderedSuccessResponse{
		Success:    true,
		Message:    params.Message,
		Data:       params.Data,
		Pagination: params.Pagination,
		Meta:       params.Meta,
	}
	code := params.Code
	if code == 0 {
		code = fiber.StatusOK
	}
	return c.Status(code).JSON(response)
}

// ErrorResponse writes the standard error envelope. When no code is given it
// is derived from the kind of the first error, and form errors become field details.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, errs ...error) error {
	var err error
	if len(errs) > 0 {
		err = errs[0]
	}

	response := OrderedErrorResponse{
		Success: false,
		Message: params.Message,
	}
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			response.Kind = appErr.Kind.String()
		}
		var formErr *FormError
		if errors.As(err, &formErr) {
			response.Details = formErr.Errors
		}
	}
	if params.Details != nil {
		response.Details = params.Details
	}

	if exposeErrors(c) {
		if err != nil {
			response.DevMessage = err.Error()
			response.Trace = string(debug.Stack())
		}
		if params.DevMessage != "" {
			response.DevMessage = params.DevMessage
		}
		if params.Trace != "" {
			response.Trace = params.Trace
		}
	}

	errorCode := params.Code
	if errorCode == 0 {
		errorCode = fiber.StatusInternalServerError
		if err != nil {
			errorCode = apperr.HTTPStatus(err)
			var formErr *FormError
			if errors.As(err, &formErr) {
				errorCode = fiber.StatusBadRequest
			}
		}
	}
	return c.Status(errorCode).JSON(response)
}

func exposeErrors(c *fiber.Ctx) bool {
	enabled, _ := c.Locals(ExposeErrorsKey).(bool)
	return enabled
}

// PublicMessage returns the message of a client-side *apperr.Error, which is
// safe to show to callers, or fallback for anything else.
func PublicMessage(err error, fallback string) string {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Err == nil {
		return fallback
	}
	if apperr.HTTPStatus(appErr) >= fiber.StatusInternalServerError {
		return fallback
	}
	return appErr.Err.Error()
}
