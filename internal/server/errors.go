// Package server provides the HTTP API for portfolio generation.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/fastfolio/internal/analysis"
	"github.com/jonathan/fastfolio/internal/pipeline"
	"github.com/jonathan/fastfolio/internal/rendering"
)

// Machine-readable error codes returned in ErrorResponse.Code
const (
	CodeInvalidRequest     = "invalid_request"
	CodeInvalidProfile     = "invalid_profile"
	CodeUploadTooLarge     = "upload_too_large"
	CodeConfigurationError = "configuration_error"
	CodeModelUnavailable   = "model_unavailable"
	CodeRenderFailed       = "render_failed"
	CodeRateLimited        = "rate_limit_exceeded"
	CodeInternal           = "internal_error"
)

// ErrorResponse is the body of every non-PDF failure
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ErrValidation indicates a malformed request body or form
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUploadTooLarge indicates the aggregate upload cap was exceeded
type ErrUploadTooLarge struct {
	Limit int64
}

func (e *ErrUploadTooLarge) Error() string {
	return fmt.Sprintf("uploads exceed the %d byte limit", e.Limit)
}

// HTTPStatus returns the status code and error code for an error
func HTTPStatus(err error) (int, string) {
	var (
		validation  *ErrValidation
		profile     *pipeline.ValidationError
		unknownMode *pipeline.UnknownModeError
		tooLarge    *ErrUploadTooLarge
		configErr   *analysis.ConfigurationError
		modelErr    *analysis.ModelError
		renderErr   *rendering.RenderError
		templateErr *rendering.TemplateError
		maxBytesErr *http.MaxBytesError
	)

	switch {
	case errors.As(err, &tooLarge), errors.As(err, &maxBytesErr):
		return http.StatusBadRequest, CodeUploadTooLarge
	case errors.As(err, &validation), errors.As(err, &unknownMode):
		return http.StatusBadRequest, CodeInvalidRequest
	case errors.As(err, &profile):
		return http.StatusBadRequest, CodeInvalidProfile
	case errors.As(err, &configErr):
		return http.StatusInternalServerError, CodeConfigurationError
	case errors.As(err, &modelErr):
		return http.StatusBadGateway, CodeModelUnavailable
	case errors.As(err, &renderErr):
		return http.StatusBadGateway, CodeRenderFailed
	case errors.As(err, &templateErr):
		return http.StatusInternalServerError, CodeRenderFailed
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// publicMessage hides internal detail for server-side failures
func publicMessage(status int, err error) string {
	var configErr *analysis.ConfigurationError
	switch {
	case status < http.StatusInternalServerError:
		return err.Error()
	case errors.As(err, &configErr):
		return "the analysis service is not configured"
	case status == http.StatusBadGateway:
		return "document generation failed"
	default:
		return "internal server error"
	}
}
