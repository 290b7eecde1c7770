package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bed-admission-service/internal/converter"
	"bed-admission-service/internal/usecase"
	"bed-admission-service/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// writeError maps usecase errors to HTTP responses. Unknown errors are logged
// and reported as a bare 500.
func writeError(w http.ResponseWriter, log *logrus.Logger, err error) {
	var validationErr *usecase.ValidationError
	var allocationErr *usecase.BedAllocationError
	var admittedErr *usecase.AlreadyAdmittedError

	switch {
	case errors.As(err, &validationErr):
		response.ValidationError(w, map[string]string{validationErr.Field: validationErr.Message})
	case errors.As(err, &allocationErr):
		response.AllocationFailed(w, allocationErr.Reason, converter.AlternativesToResponses(allocationErr.Alternatives))
	case errors.As(err, &admittedErr):
		response.Conflict(w, "Patient already has an active admission", converter.AdmissionToExisting(admittedErr.Existing))
	case errors.Is(err, usecase.ErrPatientAlreadyAdmitted):
		response.Conflict(w, "Patient already has an active admission", nil)
	case errors.Is(err, usecase.ErrNoToken):
		response.BadRequest(w, "Request was not authenticated with a token")
	case errors.Is(err, usecase.ErrBedNotFound):
		response.NotFound(w, "Bed not found")
	case errors.Is(err, usecase.ErrAdmissionNotFound):
		response.NotFound(w, "Admission not found")
	case errors.Is(err, usecase.ErrAuditLogNotFound):
		response.NotFound(w, "Audit log not found")
	case errors.Is(err, usecase.ErrDuplicateLocation),
		errors.Is(err, usecase.ErrBedOccupied),
		errors.Is(err, usecase.ErrBedNotAvailable),
		errors.Is(err, usecase.ErrTargetBedUnavailable),
		errors.Is(err, usecase.ErrAdmissionNotActive),
		errors.Is(err, usecase.ErrAdmissionInProgress):
		response.Conflict(w, capitalize(err.Error()), nil)
	default:
		log.Errorf("Unhandled error: %+v", err)
		response.InternalServerError(w, "")
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// parseUUIDVar reads a uuid path variable, writing a 400 when malformed
func parseUUIDVar(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid "+label+" ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

// parsePagination reads page and limit, defaulting to 1 and 10
func parsePagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
