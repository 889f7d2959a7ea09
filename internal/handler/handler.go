package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/staykeep/staykeep/internal/handler/dto"
	"github.com/staykeep/staykeep/internal/middleware"
	"github.com/staykeep/staykeep/internal/notify"
	"github.com/staykeep/staykeep/internal/repository"
	"github.com/staykeep/staykeep/internal/service"
)

// Config holds handler-level settings.
type Config struct {
	// SystemActorID is the user credited in audit entries for
	// reporterless task creations.
	SystemActorID string

	// SLAThresholds are the property-wide priority deadlines.
	SLAThresholds service.SLAThresholds
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pool           *pgxpool.Pool
	taskService    *service.TaskService
	spaceService   *service.SpaceService
	userRepo       *repository.UserRepository
	analyticsRepo  *repository.AnalyticsRepository
	authMiddleware *middleware.AuthMiddleware
	thresholds     service.SLAThresholds
}

// New creates a new Handler instance with all dependencies.
func New(pool *pgxpool.Pool, notifier notify.Notifier, cfg Config) *Handler {
	taskRepo := repository.NewTaskRepository(pool)
	spaceRepo := repository.NewSpaceRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	equipmentRepo := repository.NewEquipmentRepository(pool)
	activityRepo := repository.NewActivityLogRepository(pool)
	analyticsRepo := repository.NewAnalyticsRepository(pool)

	selector := service.NewSelector(service.NewRandomSource())
	taskService := service.NewTaskService(
		pool, taskRepo, spaceRepo, userRepo, equipmentRepo, activityRepo,
		selector, notifier, cfg.SystemActorID,
	)
	spaceService := service.NewSpaceService(spaceRepo)

	return &Handler{
		pool:           pool,
		taskService:    taskService,
		spaceService:   spaceService,
		userRepo:       userRepo,
		analyticsRepo:  analyticsRepo,
		authMiddleware: middleware.NewAuthMiddleware(userRepo),
		thresholds:     cfg.SLAThresholds,
	}
}

// TaskService exposes the task service (used by the seed command and tests).
func (h *Handler) TaskService() *service.TaskService {
	return h.taskService
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// API v1 routes with authentication
	mux.Handle("GET /api/v1/tasks", h.auth(h.handleListTasks))
	mux.Handle("POST /api/v1/tasks", h.auth(h.handleCreateTask))
	mux.Handle("GET /api/v1/tasks/{id}", h.auth(h.handleGetTask))
	mux.Handle("PATCH /api/v1/tasks/{id}", h.auth(h.handleUpdateTask))
	mux.Handle("POST /api/v1/tasks/{id}/comments", h.auth(h.handleCommentTask))
	mux.Handle("GET /api/v1/tasks/{id}/activity", h.auth(h.handleTaskActivity))
	mux.Handle("GET /api/v1/tasks/{id}/sla", h.auth(h.handleTaskSLA))

	mux.Handle("GET /api/v1/spaces", h.auth(h.handleListSpaces))
	mux.Handle("POST /api/v1/spaces", h.auth(h.handleCreateSpace))
	mux.Handle("GET /api/v1/spaces/{id}", h.auth(h.handleGetSpace))
	mux.Handle("PATCH /api/v1/spaces/{id}/status", h.auth(h.handleOverrideSpaceStatus))

	mux.Handle("GET /api/v1/users", h.auth(h.handleListUsers))
	mux.Handle("PATCH /api/v1/users/{id}/shift", h.auth(h.handleSetShift))

	mux.Handle("GET /api/v1/analytics", h.auth(h.handleAnalytics))
}

func (h *Handler) auth(fn http.HandlerFunc) http.Handler {
	return h.authMiddleware.Authenticate(fn)
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.pool.Ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// respondDomainError maps a domain error and writes it.
func respondDomainError(w http.ResponseWriter, err error) {
	status, code, message := dto.MapDomainError(err)
	respondError(w, status, code, message)
}

// extractID extracts and validates a UUID path parameter.
// Returns (id, true) if valid, ("", false) if invalid (error already sent to client).
func extractID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue(name)
	if id == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", name+" is required")
		return "", false
	}

	if _, err := uuid.Parse(id); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", name+" must be a valid UUID")
		return "", false
	}

	return id, true
}
