package handler

import (
	"net/http"

	"bed-admission-service/internal/delivery/dto"
	"bed-admission-service/internal/delivery/http/middleware"
	"bed-admission-service/internal/usecase"
	"bed-admission-service/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type SessionHandler struct {
	log            *logrus.Logger
	sessionUsecase usecase.SessionUsecase
}

func NewSessionHandler(log *logrus.Logger, sessionUsecase usecase.SessionUsecase) *SessionHandler {
	return &SessionHandler{
		log:            log,
		sessionUsecase: sessionUsecase,
	}
}

// Me returns the caller as seen by the auth middleware
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	tokenID, _ := middleware.GetTokenIDFromContext(r.Context())
	resp := dto.SessionResponse{
		Subject: principal.Subject,
		Role:    principal.Role,
		TokenID: tokenID,
	}
	if expiresAt := middleware.GetTokenExpiryFromContext(r.Context()); !expiresAt.IsZero() {
		resp.ExpiresAt = &expiresAt
	}

	response.Success(w, http.StatusOK, "Session retrieved successfully", resp)
}

// Logout revokes the token that authenticated this request
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenID, _ := middleware.GetTokenIDFromContext(r.Context())

	err := h.sessionUsecase.Logout(r.Context(), tokenID, middleware.GetTokenExpiryFromContext(r.Context()))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Logout successful", nil)
}

// RevokeToken deny-lists any token by its ID
func (h *SessionHandler) RevokeToken(w http.ResponseWriter, r *http.Request) {
	tokenID := mux.Vars(r)["tokenId"]

	if err := h.sessionUsecase.RevokeToken(r.Context(), tokenID); err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, http.StatusOK, "Token revoked", nil)
}
