package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bed-admission-service/internal/delivery/dto"
	"bed-admission-service/internal/domain/entity"
	"bed-admission-service/internal/usecase"
	"bed-admission-service/pkg/response"
	"bed-admission-service/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type BedHandler struct {
	log              *logrus.Logger
	bedUsecase       usecase.BedUsecase
	analyticsUsecase usecase.AnalyticsUsecase
	reportUsecase    usecase.ReportUsecase
	validator        *validator.CustomValidator
}

func NewBedHandler(
	log *logrus.Logger,
	bedUsecase usecase.BedUsecase,
	analyticsUsecase usecase.AnalyticsUsecase,
	reportUsecase usecase.ReportUsecase,
	validator *validator.CustomValidator,
) *BedHandler {
	return &BedHandler{
		log:              log,
		bedUsecase:       bedUsecase,
		analyticsUsecase: analyticsUsecase,
		reportUsecase:    reportUsecase,
		validator:        validator,
	}
}

func (h *BedHandler) CreateBed(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	bed, err := h.bedUsecase.CreateBed(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusCreated, "Bed created successfully", bed)
}

// GetBeds lists active beds.
// Query: ward, type, status, page, limit, sortBy, sortOrder
func (h *BedHandler) GetBeds(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, limit := parsePagination(r)

	filter := &entity.BedFilter{
		Ward:      query.Get("ward"),
		Type:      entity.BedType(query.Get("type")),
		Status:    entity.BedStatus(query.Get("status")),
		Page:      page,
		Limit:     limit,
		SortBy:    query.Get("sortBy"),
		SortOrder: query.Get("sortOrder"),
	}

	beds, total, err := h.bedUsecase.GetBeds(r.Context(), filter)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Beds retrieved successfully", beds, response.NewMeta(page, limit, total))
}

func (h *BedHandler) GetBed(w http.ResponseWriter, r *http.Request) {
	bedID, ok := parseUUIDVar(w, r, "id", "bed")
	if !ok {
		return
	}

	bed, err := h.bedUsecase.GetBed(r.Context(), bedID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Bed retrieved successfully", bed)
}

func (h *BedHandler) GetBedsByWard(w http.ResponseWriter, r *http.Request) {
	beds, err := h.bedUsecase.GetBedsByWard(r.Context(), mux.Vars(r)["ward"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Beds retrieved successfully", beds)
}

func (h *BedHandler) GetAvailableBedsByType(w http.ResponseWriter, r *http.Request) {
	beds, err := h.bedUsecase.GetAvailableBedsByType(r.Context(), mux.Vars(r)["type"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Available beds retrieved successfully", beds)
}

func (h *BedHandler) GetBedMapping(w http.ResponseWriter, r *http.Request) {
	mapping, err := h.bedUsecase.GetBedMapping(r.Context(), r.URL.Query().Get("ward"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Bed mapping retrieved successfully", mapping)
}

func (h *BedHandler) UpdateBed(w http.ResponseWriter, r *http.Request) {
	bedID, ok := parseUUIDVar(w, r, "id", "bed")
	if !ok {
		return
	}

	var req dto.UpdateBedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	bed, err := h.bedUsecase.UpdateBed(r.Context(), bedID, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Bed updated successfully", bed)
}

func (h *BedHandler) UpdateBedStatus(w http.ResponseWriter, r *http.Request) {
	bedID, ok := parseUUIDVar(w, r, "id", "bed")
	if !ok {
		return
	}

	var req dto.UpdateBedStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	bed, err := h.bedUsecase.UpdateBedStatus(r.Context(), bedID, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Bed status updated successfully", bed)
}

func (h *BedHandler) DeleteBed(w http.ResponseWriter, r *http.Request) {
	bedID, ok := parseUUIDVar(w, r, "id", "bed")
	if !ok {
		return
	}

	if err := h.bedUsecase.DeleteBed(r.Context(), bedID); err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Bed deactivated successfully", nil)
}

func (h *BedHandler) GetUtilizationStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analyticsUsecase.GetUtilizationStats(r.Context(), r.URL.Query().Get("ward"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Utilization stats retrieved successfully", stats)
}

func (h *BedHandler) PredictAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	days := usecase.DefaultPredictionDays
	if raw := query.Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.ValidationError(w, map[string]string{"days": "days must be a number"})
			return
		}
		days = parsed
	}

	prediction, err := h.analyticsUsecase.PredictAvailability(r.Context(), days, query.Get("ward"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Availability prediction retrieved successfully", prediction)
}

func (h *BedHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	bedID, ok := parseUUIDVar(w, r, "id", "bed")
	if !ok {
		return
	}

	var req dto.CheckAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	availability, err := h.analyticsUsecase.CheckAvailability(r.Context(), bedID, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Bed availability checked successfully", availability)
}

func (h *BedHandler) ExportBedStatus(w http.ResponseWriter, r *http.Request) {
	content, filename, err := h.reportUsecase.ExportBedStatus(r.Context(), r.URL.Query().Get("ward"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Attachment(w, xlsxContentType, filename, content)
}
