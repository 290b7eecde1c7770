package handler

import (
	"encoding/json"
	"net/http"

	"bed-admission-service/internal/delivery/dto"
	"bed-admission-service/internal/domain/entity"
	"bed-admission-service/internal/usecase"
	"bed-admission-service/pkg/response"
	"bed-admission-service/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type AdmissionHandler struct {
	log              *logrus.Logger
	admissionUsecase usecase.AdmissionUsecase
	validator        *validator.CustomValidator
}

func NewAdmissionHandler(log *logrus.Logger, admissionUsecase usecase.AdmissionUsecase, validator *validator.CustomValidator) *AdmissionHandler {
	return &AdmissionHandler{
		log:              log,
		admissionUsecase: admissionUsecase,
		validator:        validator,
	}
}

func (h *AdmissionHandler) CreateAdmission(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAdmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	admission, err := h.admissionUsecase.CreateAdmission(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusCreated, "Patient admitted successfully", admission)
}

// GetAdmissions lists admissions.
// Query: status, category, priority, ward, page, limit, sortBy, sortOrder
func (h *AdmissionHandler) GetAdmissions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, limit := parsePagination(r)

	filter := &entity.AdmissionFilter{
		Status:          entity.AdmissionStatus(query.Get("status")),
		PatientCategory: entity.PatientCategory(query.Get("category")),
		Priority:        entity.Priority(query.Get("priority")),
		Ward:            query.Get("ward"),
		Page:            page,
		Limit:           limit,
		SortBy:          query.Get("sortBy"),
		SortOrder:       query.Get("sortOrder"),
	}

	admissions, total, err := h.admissionUsecase.GetAdmissions(r.Context(), filter)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Admissions retrieved successfully", admissions, response.NewMeta(page, limit, total))
}

func (h *AdmissionHandler) GetActiveAdmissions(w http.ResponseWriter, r *http.Request) {
	admissions, err := h.admissionUsecase.GetActiveAdmissions(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Active admissions retrieved successfully", admissions)
}

func (h *AdmissionHandler) GetAdmission(w http.ResponseWriter, r *http.Request) {
	admissionID, ok := parseUUIDVar(w, r, "id", "admission")
	if !ok {
		return
	}

	admission, err := h.admissionUsecase.GetAdmission(r.Context(), admissionID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Admission retrieved successfully", admission)
}

func (h *AdmissionHandler) GetAdmissionsByPatient(w http.ResponseWriter, r *http.Request) {
	admissions, err := h.admissionUsecase.GetAdmissionsByPatient(r.Context(), mux.Vars(r)["patientId"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Patient admissions retrieved successfully", admissions)
}

func (h *AdmissionHandler) GetAdmissionsByWard(w http.ResponseWriter, r *http.Request) {
	admissions, err := h.admissionUsecase.GetAdmissionsByWard(r.Context(), mux.Vars(r)["ward"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Ward admissions retrieved successfully", admissions)
}

func (h *AdmissionHandler) GetAdmissionsByCategory(w http.ResponseWriter, r *http.Request) {
	admissions, err := h.admissionUsecase.GetAdmissionsByCategory(r.Context(), mux.Vars(r)["category"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Category admissions retrieved successfully", admissions)
}

func (h *AdmissionHandler) UpdateAdmission(w http.ResponseWriter, r *http.Request) {
	admissionID, ok := parseUUIDVar(w, r, "id", "admission")
	if !ok {
		return
	}

	var req dto.UpdateAdmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	admission, err := h.admissionUsecase.UpdateAdmission(r.Context(), admissionID, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Admission updated successfully", admission)
}

func (h *AdmissionHandler) DischargePatient(w http.ResponseWriter, r *http.Request) {
	admissionID, ok := parseUUIDVar(w, r, "id", "admission")
	if !ok {
		return
	}

	var req dto.DischargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	admission, err := h.admissionUsecase.DischargePatient(r.Context(), admissionID, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Patient discharged successfully", admission)
}

func (h *AdmissionHandler) TransferPatient(w http.ResponseWriter, r *http.Request) {
	admissionID, ok := parseUUIDVar(w, r, "id", "admission")
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	admission, err := h.admissionUsecase.TransferPatient(r.Context(), admissionID, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Patient transferred successfully", admission)
}

func (h *AdmissionHandler) UpdateWorkflowStatus(w http.ResponseWriter, r *http.Request) {
	admissionID, ok := parseUUIDVar(w, r, "id", "admission")
	if !ok {
		return
	}

	var req dto.UpdateWorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	admission, err := h.admissionUsecase.UpdateWorkflowStatus(r.Context(), admissionID, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Workflow status updated successfully", admission)
}

func (h *AdmissionHandler) GetWorkflowDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.admissionUsecase.GetWorkflowDashboard(r.Context(), r.URL.Query().Get("ward"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Workflow dashboard retrieved successfully", dashboard)
}

func (h *AdmissionHandler) GetBedStatusTracker(w http.ResponseWriter, r *http.Request) {
	entries, err := h.admissionUsecase.GetBedStatusTracker(r.Context(), r.URL.Query().Get("ward"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Bed status retrieved successfully", entries)
}
