package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires every page of the blog. loginRequired guards pages for
// signed-in users, adminOnly guards group management.
func NewRouter(h *Handlers, loginRequired, adminOnly func(http.Handler) http.Handler) *mux.Router {
	r := mux.NewRouter().StrictSlash(true)
	r.NotFoundHandler = http.HandlerFunc(h.NotFound)

	private := func(fn http.HandlerFunc) http.Handler {
		return loginRequired(fn)
	}

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	// posts
	r.HandleFunc("/", h.Index).Methods(http.MethodGet)
	r.HandleFunc("/group/{slug}/", h.GroupPosts).Methods(http.MethodGet)
	r.HandleFunc("/profile/{username}/", h.Profile).Methods(http.MethodGet)
	r.Handle("/profile/{username}/", private(h.DeleteProfile)).Methods(http.MethodDelete)
	r.HandleFunc("/posts/{id}/", h.PostDetail).Methods(http.MethodGet)
	r.Handle("/posts/{id}/comment/", private(h.AddComment)).Methods(http.MethodPost)
	r.Handle("/posts/{id}/edit/", private(h.EditPost)).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/posts/{id}/delete/", private(h.DeletePost)).Methods(http.MethodPost)
	r.Handle("/create/", private(h.CreatePost)).Methods(http.MethodGet, http.MethodPost)

	// follows
	r.Handle("/follow/", private(h.FollowIndex)).Methods(http.MethodGet)
	r.Handle("/profile/{username}/follow/", private(h.ProfileFollow)).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/profile/{username}/unfollow/", private(h.ProfileUnfollow)).Methods(http.MethodGet, http.MethodPost)

	// groups
	r.HandleFunc("/groups/", h.ListGroups).Methods(http.MethodGet)
	r.Handle("/admin/groups/", adminOnly(http.HandlerFunc(h.CreateGroup))).Methods(http.MethodPost)
	r.Handle("/admin/groups/{slug}/", adminOnly(http.HandlerFunc(h.DeleteGroup))).Methods(http.MethodDelete)

	// auth
	r.HandleFunc("/auth/signup/", h.Signup).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/auth/login/", h.Login).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/auth/refresh/", h.RefreshToken).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout/", h.Logout).Methods(http.MethodGet, http.MethodPost)

	// about
	r.HandleFunc("/about/author/", h.AboutAuthor).Methods(http.MethodGet)
	r.HandleFunc("/about/tech/", h.AboutTech).Methods(http.MethodGet)

	return r
}
