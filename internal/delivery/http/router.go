package http

import (
	"net/http"

	"bed-admission-service/internal/delivery/http/handler"
	"bed-admission-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	bedHandler        *handler.BedHandler
	admissionHandler  *handler.AdmissionHandler
	auditLogHandler   *handler.AuditLogHandler
	adminHandler      *handler.AdminHandler
	sessionHandler    *handler.SessionHandler
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
	metricsHandler    http.Handler
}

func NewRouter(
	bedHandler *handler.BedHandler,
	admissionHandler *handler.AdmissionHandler,
	auditLogHandler *handler.AuditLogHandler,
	adminHandler *handler.AdminHandler,
	sessionHandler *handler.SessionHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		bedHandler:        bedHandler,
		admissionHandler:  admissionHandler,
		auditLogHandler:   auditLogHandler,
		adminHandler:      adminHandler,
		sessionHandler:    sessionHandler,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
		metricsHandler:    metricsHandler,
	}
}

// Setup registers every route. Static segments are registered before {id}
// so that e.g. /beds/export never reaches GetBed.
func (r *Router) Setup() *mux.Router {
	// CORS preflight for every path, ahead of the method-specific routes
	r.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(r.preflight)

	if r.metricsHandler != nil {
		r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)
	}

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Session routes (any authenticated caller)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.Use(r.authMiddleware.Authenticate)
	auth.HandleFunc("/me", r.sessionHandler.Me).Methods(http.MethodGet)
	auth.HandleFunc("/logout", r.sessionHandler.Logout).Methods(http.MethodPost)

	r.setupBedRoutes(api)
	r.setupAdmissionRoutes(api)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)
	admin.HandleFunc("/reconcile", r.adminHandler.Reconcile).Methods(http.MethodPost)
	admin.HandleFunc("/tokens/{tokenId}/revoke", r.sessionHandler.RevokeToken).Methods(http.MethodPost)

	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.loggingMiddleware.Handle)

	return r.router
}

func (r *Router) setupBedRoutes(api *mux.Router) {
	// Bed management (admin)
	bedsAdmin := api.PathPrefix("/beds").Subrouter()
	bedsAdmin.Use(r.authMiddleware.Authenticate)
	bedsAdmin.Use(middleware.RequireAdmin)
	bedsAdmin.HandleFunc("", r.bedHandler.CreateBed).Methods(http.MethodPost)
	bedsAdmin.HandleFunc("/{id}", r.bedHandler.UpdateBed).Methods(http.MethodPut)
	bedsAdmin.HandleFunc("/{id}", r.bedHandler.DeleteBed).Methods(http.MethodDelete)

	// Bed status (admin, staff)
	bedsStaff := api.PathPrefix("/beds").Subrouter()
	bedsStaff.Use(r.authMiddleware.Authenticate)
	bedsStaff.Use(middleware.RequireStaff)
	bedsStaff.HandleFunc("/{id}/status", r.bedHandler.UpdateBedStatus).Methods(http.MethodPatch)

	// Bed reads (public)
	beds := api.PathPrefix("/beds").Subrouter()
	beds.HandleFunc("", r.bedHandler.GetBeds).Methods(http.MethodGet)
	beds.HandleFunc("/export", r.bedHandler.ExportBedStatus).Methods(http.MethodGet)
	beds.HandleFunc("/dashboard/mapping", r.bedHandler.GetBedMapping).Methods(http.MethodGet)
	beds.HandleFunc("/stats/utilization", r.bedHandler.GetUtilizationStats).Methods(http.MethodGet)
	beds.HandleFunc("/stats/prediction", r.bedHandler.PredictAvailability).Methods(http.MethodGet)
	beds.HandleFunc("/ward/{ward}", r.bedHandler.GetBedsByWard).Methods(http.MethodGet)
	beds.HandleFunc("/available/{type}", r.bedHandler.GetAvailableBedsByType).Methods(http.MethodGet)
	beds.HandleFunc("/{id}/availability", r.bedHandler.CheckAvailability).Methods(http.MethodPost)
	beds.HandleFunc("/{id}", r.bedHandler.GetBed).Methods(http.MethodGet)
}

func (r *Router) setupAdmissionRoutes(api *mux.Router) {
	// Admission lifecycle (admin, staff)
	admissionsStaff := api.PathPrefix("/admissions").Subrouter()
	admissionsStaff.Use(r.authMiddleware.Authenticate)
	admissionsStaff.Use(middleware.RequireStaff)
	admissionsStaff.HandleFunc("", r.admissionHandler.CreateAdmission).Methods(http.MethodPost)
	admissionsStaff.HandleFunc("/{id}", r.admissionHandler.UpdateAdmission).Methods(http.MethodPut)
	admissionsStaff.HandleFunc("/{id}/discharge", r.admissionHandler.DischargePatient).Methods(http.MethodPost)
	admissionsStaff.HandleFunc("/{id}/transfer", r.admissionHandler.TransferPatient).Methods(http.MethodPost)
	admissionsStaff.HandleFunc("/{id}/workflow", r.admissionHandler.UpdateWorkflowStatus).Methods(http.MethodPatch)

	// Admission reads (public)
	admissions := api.PathPrefix("/admissions").Subrouter()
	admissions.HandleFunc("", r.admissionHandler.GetAdmissions).Methods(http.MethodGet)
	admissions.HandleFunc("/active", r.admissionHandler.GetActiveAdmissions).Methods(http.MethodGet)
	admissions.HandleFunc("/dashboard/workflow", r.admissionHandler.GetWorkflowDashboard).Methods(http.MethodGet)
	admissions.HandleFunc("/dashboard/bed-status", r.admissionHandler.GetBedStatusTracker).Methods(http.MethodGet)
	admissions.HandleFunc("/patient/{patientId}", r.admissionHandler.GetAdmissionsByPatient).Methods(http.MethodGet)
	admissions.HandleFunc("/ward/{ward}", r.admissionHandler.GetAdmissionsByWard).Methods(http.MethodGet)
	admissions.HandleFunc("/category/{category}", r.admissionHandler.GetAdmissionsByCategory).Methods(http.MethodGet)
	admissions.HandleFunc("/{id}", r.admissionHandler.GetAdmission).Methods(http.MethodGet)
}

func (r *Router) preflight(w http.ResponseWriter, req *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
