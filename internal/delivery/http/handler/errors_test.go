package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bed-admission-service/internal/allocator"
	"bed-admission-service/internal/domain/entity"
	"bed-admission-service/internal/usecase"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success      bool                     `json:"success"`
	Message      string                   `json:"message"`
	Data         json.RawMessage          `json:"data"`
	Error        json.RawMessage          `json:"error"`
	Alternatives []map[string]interface{} `json:"alternatives"`
	Meta         map[string]interface{}   `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", &usecase.ValidationError{Field: "days", Message: "days must be between 1 and 90"}, http.StatusBadRequest, "Validation failed"},
		{"bed not found", usecase.ErrBedNotFound, http.StatusNotFound, "Bed not found"},
		{"admission not found", fmt.Errorf("discharge: %w", usecase.ErrAdmissionNotFound), http.StatusNotFound, "Admission not found"},
		{"audit log not found", usecase.ErrAuditLogNotFound, http.StatusNotFound, "Audit log not found"},
		{"duplicate location", usecase.ErrDuplicateLocation, http.StatusConflict, "An active bed already exists at this ward, room and bed number"},
		{"occupied", usecase.ErrBedOccupied, http.StatusConflict, "Bed is occupied"},
		{"target unavailable", usecase.ErrTargetBedUnavailable, http.StatusConflict, "Target bed is not available"},
		{"not active", usecase.ErrAdmissionNotActive, http.StatusConflict, "Admission is not active"},
		{"in progress", usecase.ErrAdmissionInProgress, http.StatusConflict, "Another admission for this patient is in progress"},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, quietLogger(), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tt.message, env.Message)
		})
	}
}

func TestWriteError_ValidationCarriesField(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, quietLogger(), &usecase.ValidationError{Field: "end_date", Message: "end_date must be after start_date"})

	env := decodeEnvelope(t, rec)
	var fields map[string]string
	require.NoError(t, json.Unmarshal(env.Error, &fields))
	assert.Equal(t, map[string]string{"end_date": "end_date must be after start_date"}, fields)
}

func TestWriteError_AllocationFailureListsAlternatives(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, quietLogger(), &usecase.BedAllocationError{
		BedType: entity.BedTypeICU,
		Reason:  "No available ICU beds found",
		Alternatives: []allocator.Alternative{
			{BedType: entity.BedTypeGeneral, AvailableCount: 2, Beds: []entity.Bed{{ID: uuid.New(), Ward: "General"}, {ID: uuid.New(), Ward: "General"}}},
		},
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "No available ICU beds found", env.Message)
	require.Len(t, env.Alternatives, 1)
	assert.Equal(t, "General", env.Alternatives[0]["bed_type"])
	assert.EqualValues(t, 2, env.Alternatives[0]["available_count"])
}

func TestWriteError_AlreadyAdmittedCarriesExistingAdmission(t *testing.T) {
	existing := &entity.Admission{ID: uuid.New(), BedID: uuid.New(), Ward: "ICU", RoomNumber: "101", BedNumber: "A"}

	rec := httptest.NewRecorder()
	writeError(rec, quietLogger(), &usecase.AlreadyAdmittedError{Existing: existing})

	assert.Equal(t, http.StatusConflict, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Patient already has an active admission", env.Message)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(env.Error, &payload))
	assert.Equal(t, existing.ID.String(), payload["admission_id"])
	assert.Equal(t, "ICU", payload["ward"])
	assert.Equal(t, "101", payload["room_number"])
	assert.Equal(t, "A", payload["bed_number"])
}

func TestParseUUIDVar(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "not-a-uuid"})
	rec := httptest.NewRecorder()

	_, ok := parseUUIDVar(rec, req, "id", "bed")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid bed ID", decodeEnvelope(t, rec).Message)

	want := uuid.New()
	req = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": want.String()})
	got, ok := parseUUIDVar(httptest.NewRecorder(), req, "id", "bed")
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query string
		page  int
		limit int
	}{
		{"", 1, 10},
		{"page=3&limit=25", 3, 25},
		{"page=0&limit=-5", 1, 10},
		{"page=abc&limit=500", 1, 100},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		page, limit := parsePagination(req)
		assert.Equal(t, tt.page, page, tt.query)
		assert.Equal(t, tt.limit, limit, tt.query)
	}
}
