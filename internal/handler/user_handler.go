package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// DeleteProfile removes an account together with its posts. Allowed to the
// owner and to admins.
func (h *Handlers) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	if err := h.UserService.DeleteUser(r.Context(), actorFromRequest(r), username); err != nil {
		h.writeServiceError(w, r, err, nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
