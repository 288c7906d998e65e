package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"socialnet/internal/apperror"
	"socialnet/internal/auth"
	"socialnet/internal/models"
	"socialnet/internal/service"
	"socialnet/internal/storage"
)

const mediaField = "media"

type PostsResponse struct {
	Posts      []models.Post `json:"posts"`
	Pagination Pagination    `json:"pagination"`
}

// postForm is the multipart body of create and update. Pointer fields are nil
// when the form omits them.
type postForm struct {
	Content         *string
	CommentsEnabled *bool
	ScheduledAt     *time.Time
	MediaPath       string
}

func (h *Handlers) writePosts(w http.ResponseWriter, posts []models.Post, page models.Page) {
	writeJSON(w, PostsResponse{Posts: posts, Pagination: newPagination(page, len(posts))}, http.StatusOK)
}

// parsePostForm reads the post fields and stages an attached media file in
// the upload directory. The caller owns the staged file.
func (h *Handlers) parsePostForm(w http.ResponseWriter, r *http.Request) (*postForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.Media.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.Media.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperror.Validation("file is too large (max %d MB)", h.Cfg.Media.MaxUploadSize/(1024*1024))
		}
		return nil, apperror.Validation("invalid multipart form")
	}

	form := &postForm{}

	if values, ok := r.MultipartForm.Value["content"]; ok && len(values) > 0 {
		content := strings.TrimSpace(h.sanitize(values[0]))
		form.Content = &content
	}

	if raw := r.FormValue("comments_enabled"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, apperror.Validation("comments_enabled must be a boolean")
		}
		form.CommentsEnabled = &enabled
	}

	if raw := r.FormValue("scheduled_at"); raw != "" {
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, apperror.Validation("scheduled_at must be an RFC 3339 timestamp")
		}
		form.ScheduledAt = &at
	}

	path, err := h.stageUpload(r)
	if err != nil {
		return nil, err
	}
	form.MediaPath = path

	return form, nil
}

func (h *Handlers) stageUpload(r *http.Request) (string, error) {
	file, header, err := r.FormFile(mediaField)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", apperror.Validation("could not read the media file")
	}
	defer file.Close()

	tmp, err := os.CreateTemp(h.Cfg.Media.UploadDir, "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", fmt.Errorf("failed to stage upload: %w", err)
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to stage upload: %w", err)
	}

	return tmp.Name(), nil
}

// cleanup removes a staged file the media store did not consume.
func cleanup(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to remove staged upload %s: %v", path, err)
	}
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	h.createPost(w, r, false)
}

// SchedulePost is CreatePost with scheduled_at required.
func (h *Handlers) SchedulePost(w http.ResponseWriter, r *http.Request) {
	h.createPost(w, r, true)
}

func (h *Handlers) createPost(w http.ResponseWriter, r *http.Request, requireSchedule bool) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	form, err := h.parsePostForm(w, r)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	defer cleanup(form.MediaPath)

	if requireSchedule && form.ScheduledAt == nil {
		WriteAppError(w, r, apperror.Validation("scheduled_at is required"))
		return
	}

	req := service.CreatePostRequest{
		OwnerID:         p.UserID,
		MediaPath:       form.MediaPath,
		CommentsEnabled: true,
		ScheduledAt:     form.ScheduledAt,
	}
	if form.Content != nil {
		req.Content = *form.Content
	}
	if form.CommentsEnabled != nil {
		req.CommentsEnabled = *form.CommentsEnabled
	}

	post, err := h.PostService.CreatePost(r.Context(), req)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeJSON(w, post, http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	postID, ok := pathID(w, r, "postID")
	if !ok {
		return
	}

	form, err := h.parsePostForm(w, r)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	defer cleanup(form.MediaPath)

	post, err := h.PostService.UpdatePost(r.Context(), service.UpdatePostRequest{
		PostID:          postID,
		OwnerID:         p.UserID,
		Content:         form.Content,
		CommentsEnabled: form.CommentsEnabled,
		ScheduledAt:     form.ScheduledAt,
		MediaPath:       form.MediaPath,
	})
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeJSON(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	postID, ok := pathID(w, r, "postID")
	if !ok {
		return
	}

	if err := h.PostService.DeletePost(r.Context(), postID, p.UserID); err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeMessage(w, "Post moved to trash", http.StatusOK)
}

func (h *Handlers) RecoverPost(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	postID, ok := pathID(w, r, "postID")
	if !ok {
		return
	}

	post, err := h.PostService.RecoverPost(r.Context(), postID, p.UserID)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeJSON(w, post, http.StatusOK)
}

func (h *Handlers) DeletePostPermanently(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	postID, ok := pathID(w, r, "postID")
	if !ok {
		return
	}

	if err := h.PostService.DeletePostPermanently(r.Context(), postID, p.UserID); err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeMessage(w, "Post deleted permanently", http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "postID")
	if !ok {
		return
	}

	post, err := h.QueryService.GetPost(r.Context(), postID, auth.UserID(r.Context()))
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeJSON(w, post, http.StatusOK)
}

func (h *Handlers) MyPosts(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	page := pageFromRequest(r)
	posts, err := h.QueryService.MyPosts(r.Context(), p.UserID, page)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	h.writePosts(w, posts, page)
}

func (h *Handlers) MyDeletedPosts(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	page := pageFromRequest(r)
	posts, err := h.QueryService.MyDeletedPosts(r.Context(), p.UserID, page)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	h.writePosts(w, posts, page)
}

func (h *Handlers) Feed(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	page := pageFromRequest(r)
	posts, err := h.QueryService.Feed(r.Context(), p.UserID, page)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	h.writePosts(w, posts, page)
}

func (h *Handlers) SearchPosts(w http.ResponseWriter, r *http.Request) {
	page := pageFromRequest(r)
	posts, err := h.QueryService.Search(r.Context(), r.URL.Query().Get("query"), page)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	h.writePosts(w, posts, page)
}

func (h *Handlers) UserPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	page := pageFromRequest(r)
	posts, err := h.QueryService.UserPosts(r.Context(), userID, auth.UserID(r.Context()), page)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	h.writePosts(w, posts, page)
}

func (h *Handlers) PostStats(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "postID")
	if !ok {
		return
	}

	stats, err := h.QueryService.PostStats(r.Context(), postID, auth.UserID(r.Context()))
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeJSON(w, stats, http.StatusOK)
}

func (h *Handlers) IncreaseView(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	postID, ok := pathID(w, r, "postID")
	if !ok {
		return
	}

	view, err := h.QueryService.RecordView(r.Context(), postID, p.UserID)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}

	writeJSON(w, view, http.StatusCreated)
}

// ServeMedia streams an object addressed by its public URL path.
func (h *Handlers) ServeMedia(w http.ResponseWriter, r *http.Request) {
	publicID, ok := storageID(r)
	if !ok {
		WriteAppError(w, r, apperror.ErrNotFound)
		return
	}

	obj, info, err := h.Media.Open(r.Context(), publicID)
	if err != nil {
		WriteAppError(w, r, err)
		return
	}
	defer obj.Close()

	if info.ContentType != "" {
		w.Header().Set("Content-Type", info.ContentType)
	}
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	io.Copy(w, obj)
}

func storageID(r *http.Request) (string, bool) {
	rest := mux.Vars(r)["path"]
	if rest == "" {
		return "", false
	}
	return storage.PublicIDFromURL("/upload/" + rest)
}
