package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/LogM3/Poster/internal/models"
)

type GroupsResponse struct {
	Groups []models.Group `json:"groups"`
}

func (h *Handlers) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.GroupService.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, nil)
		return
	}

	writeSuccess(w, GroupsResponse{Groups: groups}, http.StatusOK)
}

func (h *Handlers) CreateGroup(w http.ResponseWriter, r *http.Request) {
	form, err := h.decodeGroupForm(w, r)
	if err != nil {
		writeDecodeError(w, err, form)
		return
	}

	group, err := h.GroupService.Create(r.Context(), actorFromRequest(r), form)
	if err != nil {
		h.writeServiceError(w, r, err, form)
		return
	}

	writeSuccess(w, group, http.StatusCreated)
}

func (h *Handlers) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.GroupService.Delete(r.Context(), actorFromRequest(r), mux.Vars(r)["slug"]); err != nil {
		h.writeServiceError(w, r, err, nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
