package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/staykeep/staykeep/internal/domain"
	"github.com/staykeep/staykeep/internal/handler/dto"
	"github.com/staykeep/staykeep/internal/middleware"
	"github.com/staykeep/staykeep/internal/repository"
	"github.com/staykeep/staykeep/internal/service"
)

// handleCreateTask creates a new task. When no assignee is given the
// engine tries to auto-assign an on-shift staff member of the task's
// department.
func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.CreateTaskInput{
		Title:               req.Title,
		Description:         req.Description,
		Type:                domain.TaskType(req.Type),
		Priority:            domain.TaskPriority(req.Priority),
		SpaceID:             req.SpaceID,
		CustomLocation:      req.CustomLocation,
		AssigneeID:          req.AssigneeID,
		ReporterID:          req.ReporterID,
		EquipmentID:         req.EquipmentID,
		DueAt:               req.DueAt,
		IsGuestImpact:       req.IsGuestImpact,
		ResponseTimeMinutes: req.ResponseTimeMinutes,
		BlockLocationUntil:  req.BlockLocationUntil,
		Images:              req.Images,
	}
	// Requests without an explicit reporter are attributed to the caller.
	if input.ReporterID == nil {
		input.ReporterID = &user.ID
	}

	task, err := h.taskService.Create(ctx, input)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewTaskResponse(task))
}

// handleGetTask retrieves a single task.
func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.taskService.Get(ctx, taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewTaskResponse(task))
}

// handleListTasks lists tasks matching the query filters.
func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filters := repository.TaskListFilters{}

	if v := q.Get("assignee"); v != "" {
		filters.AssigneeID = &v
	}
	if v := q.Get("reporter"); v != "" {
		filters.ReporterID = &v
	}
	if v := q.Get("reporter_department"); v != "" {
		department := domain.TaskType(v)
		if !department.IsValid() {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid reporter_department")
			return
		}
		filters.ReporterDepartment = &department
	}
	if v := q.Get("status"); v != "" {
		for _, s := range strings.Split(v, ",") {
			status := domain.TaskStatus(s)
			if !status.IsValid() {
				respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid status filter")
				return
			}
			filters.Statuses = append(filters.Statuses, status)
		}
	}
	if v := q.Get("type"); v != "" {
		for _, t := range strings.Split(v, ",") {
			taskType := domain.TaskType(t)
			if !taskType.IsValid() {
				respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid type filter")
				return
			}
			filters.Types = append(filters.Types, taskType)
		}
	}
	if q.Get("guest_impact") == "true" {
		filters.GuestImpactOnly = true
	}

	tasks, err := h.taskService.List(ctx, filters)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resp := dto.TasksListResponse{Tasks: []dto.TaskResponse{}, Total: len(tasks)}
	for _, task := range tasks {
		resp.Tasks = append(resp.Tasks, dto.NewTaskResponse(task))
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleUpdateTask applies a patch to a task, driving the status state
// machine and its space side effects.
func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	patch := service.TaskPatch{
		Title:         req.Title,
		Description:   req.Description,
		AssigneeID:    req.AssigneeID,
		DueAt:         req.DueAt,
		IsGuestImpact: req.IsGuestImpact,
		Images:        req.Images,
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		patch.Priority = &priority
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		patch.Status = &status
	}

	task, err := h.taskService.Transition(ctx, taskID, user.ID, patch)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewTaskResponse(task))
}

// handleCommentTask appends a COMMENT entry to the task's audit trail.
func (h *Handler) handleCommentTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractID(w, r, "id")
	if !ok {
		return
	}

	var req dto.CommentTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	entry, err := h.taskService.AppendComment(ctx, taskID, req.Text, user.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewActivityEntryResponse(entry))
}

// handleTaskActivity returns the audit trail for a task, newest first.
func (h *Handler) handleTaskActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractID(w, r, "id")
	if !ok {
		return
	}

	entries, err := h.taskService.ActivityLog(ctx, taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resp := make([]dto.ActivityEntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, dto.NewActivityEntryResponse(entry))
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleTaskSLA evaluates the task's SLA on demand. The basis query
// parameter selects the measured phase: "ready" for the inspection queue,
// "created" (default) for general task age.
func (h *Handler) handleTaskSLA(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractID(w, r, "id")
	if !ok {
		return
	}

	basis := service.SLABasisCreated
	switch r.URL.Query().Get("basis") {
	case "", "created":
	case "ready":
		basis = service.SLABasisReady
	default:
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "basis must be 'created' or 'ready'")
		return
	}

	task, err := h.taskService.Get(ctx, taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	result := service.EvaluateSLA(task, h.taskService.Now(), h.thresholds, basis)
	respondJSON(w, http.StatusOK, dto.NewSLAResponse(result))
}
