package handlers

import (
	"log"
	"net/http"

	"socialnet/internal/auth"
	"socialnet/internal/models"
)

type CommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type CommentsResponse struct {
	Comments   []models.Comment `json:"comments"`
	Pagination Pagination       `json:"pagination"`
}

type LikeStatusResponse struct {
	Liked bool `json:"liked"`
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	postID, ok := pathID(w, r, "postID")
	if !ok {
		return
	}

	var req CommentRequest
	if err := h.decodeJSON(r, &req); err != nil {
		WriteAppError(w, r, err)
		return
	}

	comment, err := h.CommentService.Create(r.Context(), postID, p.UserID, h.sanitize(req.Content))
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeJSON(w, comment, http.StatusCreated)
}

func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	commentID, ok := pathID(w, r, "commentID")
	if !ok {
		return
	}

	var req CommentRequest
	if err := h.decodeJSON(r, &req); err != nil {
		WriteAppError(w, r, err)
		return
	}

	comment, err := h.CommentService.Update(r.Context(), commentID, p.UserID, h.sanitize(req.Content))
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeJSON(w, comment, http.StatusOK)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	commentID, ok := pathID(w, r, "commentID")
	if !ok {
		return
	}

	if err := h.CommentService.Delete(r.Context(), commentID, p.UserID); err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeMessage(w, "Comment deleted", http.StatusOK)
}

func (h *Handlers) PostComments(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "postID")
	if !ok {
		return
	}

	page := pageFromRequest(r)
	comments, err := h.CommentService.ListByPost(r.Context(), postID, auth.UserID(r.Context()), page)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeJSON(w, CommentsResponse{Comments: comments, Pagination: newPagination(page, len(comments))}, http.StatusOK)
}

func (h *Handlers) Like(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	postID, ok := pathID(w, r, "postID")
	if !ok {
		return
	}

	if err := h.LikeService.Like(r.Context(), p.UserID, postID); err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeJSON(w, LikeStatusResponse{Liked: true}, http.StatusOK)
}

func (h *Handlers) Unlike(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	postID, ok := pathID(w, r, "postID")
	if !ok {
		return
	}

	if err := h.LikeService.Unlike(r.Context(), p.UserID, postID); err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeJSON(w, LikeStatusResponse{Liked: false}, http.StatusOK)
}

func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	postID, ok := pathID(w, r, "postID")
	if !ok {
		return
	}

	liked, err := h.LikeService.Toggle(r.Context(), p.UserID, postID)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeJSON(w, LikeStatusResponse{Liked: liked}, http.StatusOK)
}

func (h *Handlers) HasLiked(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	postID, ok := pathID(w, r, "postID")
	if !ok {
		return
	}

	liked, err := h.LikeService.HasLiked(r.Context(), p.UserID, postID)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeJSON(w, LikeStatusResponse{Liked: liked}, http.StatusOK)
}

func (h *Handlers) PostLikers(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "postID")
	if !ok {
		return
	}

	users, err := h.LikeService.Likers(r.Context(), postID, auth.UserID(r.Context()))
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeJSON(w, UsersResponse{Users: users}, http.StatusOK)
}

func (h *Handlers) LikedPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	page := pageFromRequest(r)
	posts, err := h.LikeService.LikedPosts(r.Context(), userID, page)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	h.writePosts(w, posts, page)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		log.Printf("Error: health check failed: %v", err)
		writeJSON(w, map[string]string{"status": "unavailable"}, http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
