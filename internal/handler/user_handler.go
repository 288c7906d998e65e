package handlers

import (
	"net/http"

	"socialnet/internal/models"
	"socialnet/internal/repository"
)

type FollowRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

type SearchUsersRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"fullName" validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

type UsersResponse struct {
	Users      []models.UserSummary `json:"users"`
	Pagination *Pagination          `json:"pagination,omitempty"`
}

func (h *Handlers) Follow(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req FollowRequest
	if err := h.decodeJSON(r, &req); err != nil {
		WriteAppError(w, r, err)
		return
	}

	if err := h.UserService.Follow(r.Context(), p.UserID, req.UserID); err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeMessage(w, "Followed", http.StatusOK)
}

func (h *Handlers) Unfollow(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req FollowRequest
	if err := h.decodeJSON(r, &req); err != nil {
		WriteAppError(w, r, err)
		return
	}

	if err := h.UserService.Unfollow(r.Context(), p.UserID, req.UserID); err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeMessage(w, "Unfollowed", http.StatusOK)
}

func (h *Handlers) Following(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	users, err := h.UserService.Following(r.Context(), p.UserID)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeJSON(w, UsersResponse{Users: users}, http.StatusOK)
}

func (h *Handlers) Followers(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	users, err := h.UserService.Followers(r.Context(), p.UserID)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeJSON(w, UsersResponse{Users: users}, http.StatusOK)
}

func (h *Handlers) FollowStats(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	counts, err := h.UserService.FollowCounts(r.Context(), p.UserID)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeJSON(w, counts, http.StatusOK)
}

func (h *Handlers) SearchUsers(w http.ResponseWriter, r *http.Request) {
	var req SearchUsersRequest
	if err := h.decodeJSON(r, &req); err != nil {
		WriteAppError(w, r, err)
		return
	}

	page := pageFromRequest(r)
	users, err := h.UserService.Search(r.Context(), req.Name, page)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	pagination := newPagination(page, len(users))
	writeJSON(w, UsersResponse{Users: users, Pagination: &pagination}, http.StatusOK)
}

func (h *Handlers) AccountStats(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	stats, err := h.UserService.AccountStats(r.Context(), p.UserID)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeJSON(w, stats, http.StatusOK)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := h.decodeJSON(r, &req); err != nil {
		WriteAppError(w, r, err)
		return
	}

	user, err := h.UserService.UpdateProfile(r.Context(), p.UserID, repository.ProfilePatch{
		FullName: h.sanitizePtr(req.FullName),
		Email:    req.Email,
	})
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeJSON(w, user, http.StatusOK)
}

func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	profile, err := h.UserService.Profile(r.Context(), userID)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeJSON(w, profile, http.StatusOK)
}
