package companyerrors

import (
	"go-firme/internal/shared/apperror"
	"net/http"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found or the registry could not be reached",
		http.StatusNotFound,
	)

	ErrInvalidCUI = apperror.New(
		apperror.CodeInvalidInput,
		"CUI must contain digits only",
		http.StatusBadRequest,
	)

	ErrNotConfigured = apperror.New(
		apperror.CodeServiceUnavailable,
		"Company lookup is not configured",
		http.StatusServiceUnavailable,
	)

	ErrLookupFailed = apperror.New(
		apperror.CodeUpstreamError,
		"Company lookup failed",
		http.StatusBadGateway,
	)
)
