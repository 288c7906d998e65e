package handlers

import (
	"encoding/json"
	"errors"
	"html"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/microcosm-cc/bluemonday"

	"socialnet/internal/apperror"
	"socialnet/internal/auth"
	"socialnet/internal/config"
	"socialnet/internal/models"
	"socialnet/internal/service"
	"socialnet/internal/storage"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// HealthChecker reports whether the database is reachable.
type HealthChecker interface {
	HealthCheck() error
}

type Handlers struct {
	AuthService    service.AuthService
	UserService    service.UserService
	PostService    service.PostService
	QueryService   service.QueryService
	CommentService service.CommentService
	LikeService    service.LikeService
	Media          storage.MediaReader
	DB             HealthChecker
	Cfg            *config.Config
	Validate       *validator.Validate
	Policy         *bluemonday.Policy
}

func NewHandlers(services *service.Service, media storage.MediaReader, db HealthChecker, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthService:    services.Auth,
		UserService:    services.User,
		PostService:    services.Post,
		QueryService:   services.Query,
		CommentService: services.Comment,
		LikeService:    services.Like,
		Media:          media,
		DB:             db,
		Cfg:            cfg,
		Validate:       validator.New(),
		Policy:         bluemonday.StrictPolicy(),
	}
}

type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"hasMore"`
}

func newPagination(page models.Page, count int) Pagination {
	return Pagination{Page: page.Page, Limit: page.Limit, HasMore: count == page.Limit}
}

// pageFromRequest reads page and limit. Bad input falls back to defaults and
// limits above the maximum are clamped to it.
func pageFromRequest(r *http.Request) models.Page {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	switch {
	case limit < 1:
		limit = defaultPageLimit
	case limit > maxPageLimit:
		limit = maxPageLimit
	}
	return models.Page{Page: page, Limit: limit}
}

// pathID returns the named route variable when it is a UUID. Anything else is
// answered with 404, the same as a missing row.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := mux.Vars(r)[name]
	if _, err := uuid.Parse(id); err != nil {
		WriteAppError(w, r, apperror.ErrNotFound)
		return "", false
	}
	return id, true
}

// principal returns the authenticated caller or writes 401.
func principal(w http.ResponseWriter, r *http.Request) (*auth.Principal, bool) {
	p := auth.FromContext(r.Context())
	if p == nil {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return nil, false
	}
	return p, true
}

func (h *Handlers) decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.Validation("invalid request body")
	}
	return h.validate(dst)
}

func (h *Handlers) validate(dst interface{}) error {
	if err := h.Validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return apperror.Validation("field %s failed %s", fe.Field(), fe.Tag())
		}
		return apperror.Validation("invalid request")
	}
	return nil
}

// sanitize strips markup and stores the result as plain text. The policy
// escapes entities in its output, so they are decoded again.
func (h *Handlers) sanitize(s string) string {
	return html.UnescapeString(h.Policy.Sanitize(s))
}

func (h *Handlers) sanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := h.sanitize(*s)
	return &clean
}
