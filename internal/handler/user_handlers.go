package handler

import (
	"encoding/json"
	"net/http"

	"github.com/staykeep/staykeep/internal/domain"
	"github.com/staykeep/staykeep/internal/handler/dto"
	"github.com/staykeep/staykeep/internal/middleware"
)

// handleListUsers lists all users. Tokens are never echoed back.
func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.userRepo.List(ctx)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, dto.NewUserResponse(user))
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleSetShift toggles a user's on-shift flag. Off-shift staff are
// skipped by auto-assignment. Staff may toggle only themselves; managers
// and admins may toggle anyone.
func (h *Handler) handleSetShift(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	userID, ok := extractID(w, r, "id")
	if !ok {
		return
	}

	if caller.ID != userID && caller.Role != domain.UserRoleAdmin && caller.Role != domain.UserRoleManager {
		respondError(w, http.StatusForbidden, "INSUFFICIENT_ACCESS", "cannot change another user's shift")
		return
	}

	var req dto.SetShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.userRepo.SetOnShift(ctx, userID, req.IsOnShift); err != nil {
		respondDomainError(w, err)
		return
	}

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewUserResponse(user))
}

// handleAnalytics returns the property-wide snapshot plus per-assignee
// workload stats.
func (h *Handler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snapshot, err := h.analyticsRepo.Snapshot(ctx)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	assignees, err := h.analyticsRepo.GetAssigneeStats(ctx)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewAnalyticsResponse(snapshot, assignees))
}
