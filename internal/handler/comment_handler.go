package handlers

import "net/http"

// AddComment saves a comment and returns the reader to the post.
func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	postID, err := postIDFromPath(r)
	if err != nil {
		h.writeServiceError(w, r, err, nil)
		return
	}

	form, err := h.decodeCommentForm(w, r)
	if err != nil {
		writeDecodeError(w, err, form)
		return
	}

	if _, err := h.CommentService.AddComment(r.Context(), actorFromRequest(r), postID, form); err != nil {
		h.writeServiceError(w, r, err, form)
		return
	}

	redirect(w, r, postURL(postID))
}
