package handler

import (
	"net/http"
	"strconv"

	"bed-admission-service/internal/usecase"
	"bed-admission-service/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type AuditLogHandler struct {
	log             *logrus.Logger
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(log *logrus.Logger, auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		log:             log,
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	auditLogID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), auditLogID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}

func (h *AuditLogHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	auditLogs, total, err := h.auditLogUsecase.GetAuditLogs(r.Context(), page, limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Audit logs retrieved successfully", auditLogs, response.NewMeta(page, limit, total))
}
