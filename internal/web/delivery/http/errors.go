package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/arpansethi30/finagent/internal/web/repository"
)

const backendUnreachableMsg = "Unable to reach the analysis service. Please make sure the backend is running and try again."

// mapAnalysisError translates a gateway error into the HTTP status and the
// message shown to the user. The backend's detail string passes through
// verbatim; the no-data case gets its own message.
func mapAnalysisError(err error, symbol string) (int, string) {
	var backendErr *repository.BackendError
	switch {
	case errors.Is(err, repository.ErrNoData):
		if symbol != "" {
			return http.StatusNotFound, fmt.Sprintf("No data found for symbol %s. Please check the ticker and try again.", symbol)
		}
		return http.StatusNotFound, "No data found for the requested symbol."
	case errors.Is(err, repository.ErrBackendUnavailable):
		return http.StatusBadGateway, backendUnreachableMsg
	case errors.As(err, &backendErr):
		return backendErr.StatusCode, backendErr.Detail
	default:
		return http.StatusInternalServerError, "Analysis failed unexpectedly. Please try again."
	}
}
