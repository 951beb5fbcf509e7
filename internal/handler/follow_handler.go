package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// FollowIndex lists posts of the authors the caller follows.
func (h *Handlers) FollowIndex(w http.ResponseWriter, r *http.Request) {
	page, err := h.FollowService.Feed(r.Context(), actorFromRequest(r), pageParam(r))
	if err != nil {
		h.writeServiceError(w, r, err, nil)
		return
	}

	writeSuccess(w, PageResponse{PageObj: page}, http.StatusOK)
}

func (h *Handlers) ProfileFollow(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	if err := h.FollowService.Follow(r.Context(), actorFromRequest(r), username); err != nil {
		h.writeServiceError(w, r, err, nil)
		return
	}

	redirect(w, r, profileURL(username))
}

func (h *Handlers) ProfileUnfollow(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	if err := h.FollowService.Unfollow(r.Context(), actorFromRequest(r), username); err != nil {
		h.writeServiceError(w, r, err, nil)
		return
	}

	redirect(w, r, profileURL(username))
}
