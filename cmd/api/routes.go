package main

import (
	"net/http"

	"github.com/gorilla/mux"

	handlers "socialnet/internal/handler"
	"socialnet/internal/middleware"
)

// newRouter registers every route. Fixed post paths are registered before
// /api/posts/{postID} so the variable route does not shadow them.
func newRouter(h *handlers.Handlers, parser middleware.TokenParser) *mux.Router {
	required := middleware.RequireAuth(parser)
	optional := middleware.OptionalAuth(parser)

	authed := func(f http.HandlerFunc) http.Handler { return required(f) }
	maybe := func(f http.HandlerFunc) http.Handler { return optional(f) }

	r := mux.NewRouter()
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/media/upload/{path:.+}", h.ServeMedia).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	a := api.PathPrefix("/auth").Subrouter()
	a.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	a.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	a.HandleFunc("/refresh-token", h.RefreshToken).Methods(http.MethodPost)
	a.Handle("/logout", authed(h.Logout)).Methods(http.MethodPost)
	a.Handle("/me", authed(h.Me)).Methods(http.MethodGet)

	p := api.PathPrefix("/posts").Subrouter()
	p.Handle("", authed(h.CreatePost)).Methods(http.MethodPost)
	p.Handle("/schedule", authed(h.SchedulePost)).Methods(http.MethodPost)
	p.Handle("/my", authed(h.MyPosts)).Methods(http.MethodGet)
	p.Handle("/my/deleted", authed(h.MyDeletedPosts)).Methods(http.MethodGet)
	p.Handle("/feed", authed(h.Feed)).Methods(http.MethodGet)
	p.HandleFunc("/search", h.SearchPosts).Methods(http.MethodGet)
	p.Handle("/user/{userID}", maybe(h.UserPosts)).Methods(http.MethodGet)
	p.Handle("/stats/{postID}", maybe(h.PostStats)).Methods(http.MethodGet)
	p.Handle("/recover/{postID}", authed(h.RecoverPost)).Methods(http.MethodPut)
	p.Handle("/permanent/{postID}", authed(h.DeletePostPermanently)).Methods(http.MethodDelete)
	p.Handle("/{postID}/increase-view", authed(h.IncreaseView)).Methods(http.MethodPost)
	p.Handle("/{postID}", maybe(h.GetPost)).Methods(http.MethodGet)
	p.Handle("/{postID}", authed(h.UpdatePost)).Methods(http.MethodPut)
	p.Handle("/{postID}", authed(h.DeletePost)).Methods(http.MethodDelete)

	c := api.PathPrefix("/comments").Subrouter()
	c.Handle("/post/{postID}", maybe(h.PostComments)).Methods(http.MethodGet)
	c.Handle("/{postID}", authed(h.CreateComment)).Methods(http.MethodPost)
	c.Handle("/{commentID}", authed(h.UpdateComment)).Methods(http.MethodPut)
	c.Handle("/{commentID}", authed(h.DeleteComment)).Methods(http.MethodDelete)

	l := api.PathPrefix("/likes").Subrouter()
	l.Handle("/post/{postID}", maybe(h.PostLikers)).Methods(http.MethodGet)
	l.HandleFunc("/user/{userID}", h.LikedPosts).Methods(http.MethodGet)
	l.Handle("/toggle/{postID}", authed(h.ToggleLike)).Methods(http.MethodPost)
	l.Handle("/{postID}", authed(h.HasLiked)).Methods(http.MethodGet)
	l.Handle("/{postID}", authed(h.Like)).Methods(http.MethodPost)
	l.Handle("/{postID}", authed(h.Unlike)).Methods(http.MethodDelete)

	u := api.PathPrefix("/users").Subrouter()
	u.Handle("/follow", authed(h.Follow)).Methods(http.MethodPost)
	u.Handle("/unfollow", authed(h.Unfollow)).Methods(http.MethodDelete)
	u.Handle("/following", authed(h.Following)).Methods(http.MethodGet)
	u.Handle("/followers", authed(h.Followers)).Methods(http.MethodGet)
	u.Handle("/stats", authed(h.FollowStats)).Methods(http.MethodGet)
	u.HandleFunc("/search", h.SearchUsers).Methods(http.MethodPost)
	u.Handle("/account-stats", authed(h.AccountStats)).Methods(http.MethodGet)
	u.Handle("/profile", authed(h.UpdateProfile)).Methods(http.MethodPut)
	u.HandleFunc("/{userID}/profile", h.Profile).Methods(http.MethodGet)

	return r
}
