package handler

import (
	"encoding/json"
	"net/http"

	"github.com/staykeep/staykeep/internal/domain"
	"github.com/staykeep/staykeep/internal/handler/dto"
	"github.com/staykeep/staykeep/internal/middleware"
)

// handleCreateSpace provisions a new space. Managers and admins only.
func (h *Handler) handleCreateSpace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}
	if user.Role != domain.UserRoleAdmin && user.Role != domain.UserRoleManager {
		respondError(w, http.StatusForbidden, "INSUFFICIENT_ACCESS", "only managers can provision spaces")
		return
	}

	var req dto.CreateSpaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	space, err := h.spaceService.Create(ctx,
		req.Name,
		domain.SpaceType(req.Type),
		domain.SpaceStatus(req.Status),
		req.Description,
	)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewSpaceResponse(space))
}

// handleGetSpace retrieves a single space.
func (h *Handler) handleGetSpace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	spaceID, ok := extractID(w, r, "id")
	if !ok {
		return
	}

	space, err := h.spaceService.Get(ctx, spaceID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewSpaceResponse(space))
}

// handleListSpaces lists spaces, optionally filtered by status (the
// inspection queue asks for CLEANING).
func (h *Handler) handleListSpaces(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		spaces []*domain.Space
		err    error
	)
	if v := r.URL.Query().Get("status"); v != "" {
		spaces, err = h.spaceService.ListByStatus(ctx, domain.SpaceStatus(v))
	} else {
		spaces, err = h.spaceService.List(ctx)
	}
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resp := make([]dto.SpaceResponse, 0, len(spaces))
	for _, space := range spaces {
		resp = append(resp, dto.NewSpaceResponse(space))
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleOverrideSpaceStatus sets a space status directly, bypassing the
// task-driven mapping. Marking a space READY requires it to be INSPECTED.
func (h *Handler) handleOverrideSpaceStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	spaceID, ok := extractID(w, r, "id")
	if !ok {
		return
	}

	var req dto.OverrideSpaceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	space, err := h.spaceService.ManualOverride(ctx, spaceID, domain.SpaceStatus(req.Status), user.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewSpaceResponse(space))
}
