package apilogerrors

import (
	"go-firme/internal/shared/apperror"
	"net/http"
)

var (
	ErrAPILogNotFound = apperror.New(
		apperror.CodeNotFound,
		"API log not found",
		http.StatusNotFound,
	)

	ErrInvalidAPILogID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid API log ID",
		http.StatusBadRequest,
	)

	ErrInvalidRetention = apperror.New(
		apperror.CodeInvalidInput,
		"Retention must be at least one day",
		http.StatusBadRequest,
	)

	ErrStoreUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"API log store is unavailable",
		http.StatusServiceUnavailable,
	)
)
