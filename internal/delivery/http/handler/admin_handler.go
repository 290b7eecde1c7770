package handler

import (
	"context"
	"net/http"

	"bed-admission-service/internal/delivery/dto"
	"bed-admission-service/internal/service"
	"bed-admission-service/pkg/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Reconciler repairs beds left occupied without a matching admission
type Reconciler interface {
	RunOnce(ctx context.Context) (*service.ReconcileResult, error)
}

type AdminHandler struct {
	log        *logrus.Logger
	reconciler Reconciler
}

func NewAdminHandler(log *logrus.Logger, reconciler Reconciler) *AdminHandler {
	return &AdminHandler{
		log:        log,
		reconciler: reconciler,
	}
}

func (h *AdminHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	result, err := h.reconciler.RunOnce(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	released := result.Released
	if released == nil {
		released = []uuid.UUID{}
	}

	response.Success(w, http.StatusOK, "Reconciliation completed", dto.ReconcileResponse{
		Inspected: result.Inspected,
		Released:  released,
	})
}
