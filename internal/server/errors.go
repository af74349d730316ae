// Package server provides the HTTP REST API for the resume reviewer.
package server

import (
	"errors"
	"net/http"

	"github.com/abhinavkumar786/ai-resume-reviewer/internal/aggregate"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/export"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/extract"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/fetch"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/input"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/provider"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
// Input problems are the user's to correct; provider and aggregation failures
// surface as upstream errors so the client shows a "try again later" message
// instead of fabricated feedback.
func HTTPStatus(err error) int {
	var (
		emptyResume  *input.EmptyResumeError
		tooLong      *input.TooLongError
		validation   *input.ValidationError
		timeout      *provider.TimeoutError
		auth         *provider.AuthError
		rateLimited  *provider.RateLimitError
		call         *provider.CallError
		unparseable  *aggregate.UnparseableError
		badFormat    *export.UnsupportedFormatError
		fetchFailure *fetch.Error
		badUpload    *extract.UnsupportedTypeError
		uploadSize   *extract.TooLargeError
		uploadParse  *extract.ParseError
	)

	switch {
	case errors.As(err, &emptyResume), errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &tooLong), errors.As(err, &uploadSize):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &badFormat):
		return http.StatusBadRequest
	case errors.As(err, &badUpload), errors.As(err, &uploadParse):
		return http.StatusBadRequest
	case errors.As(err, &fetchFailure):
		return http.StatusBadRequest
	case errors.As(err, &rateLimited):
		return http.StatusTooManyRequests
	case errors.As(err, &timeout):
		return http.StatusGatewayTimeout
	case errors.As(err, &auth), errors.As(err, &call), errors.As(err, &unparseable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
