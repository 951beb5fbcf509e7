package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/LogM3/Poster/internal/forms"
	"github.com/LogM3/Poster/internal/models"
	"github.com/LogM3/Poster/internal/paginator"
	"github.com/LogM3/Poster/internal/service"
)

type PageResponse struct {
	PageObj *paginator.Page[models.Post] `json:"page_obj"`
}

type PostDetailResponse struct {
	*service.PostDetail
	Form []forms.Field `json:"form"`
}

type PostFormResponse struct {
	Form   []forms.Field  `json:"form"`
	Groups []models.Group `json:"groups"`
	IsEdit bool           `json:"is_edit"`
	Post   *models.Post   `json:"post,omitempty"`
}

func profileURL(username string) string {
	return fmt.Sprintf("/profile/%s/", url.PathEscape(username))
}

func postURL(id int64) string {
	return fmt.Sprintf("/posts/%d/", id)
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusFound)
}

// Index serves the newest posts. Encoded pages are kept in h.Pages until a
// post changes or the entry expires.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	key := "index:" + pageParam(r)
	if body, ok := h.Pages.Get(key); ok {
		writeRaw(w, body)
		return
	}

	gen := h.Pages.Generation()
	page, err := h.PostService.Index(r.Context(), pageParam(r))
	if err != nil {
		h.writeServiceError(w, r, err, nil)
		return
	}

	body, err := json.Marshal(PageResponse{PageObj: page})
	if err != nil {
		log.Printf("ошибка кодирования главной страницы: %v", err)
		WriteError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	h.Pages.SetAt(key, body, gen)
	writeRaw(w, body)
}

func writeRaw(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Printf("ошибка записи ответа: %v", err)
	}
}

func (h *Handlers) GroupPosts(w http.ResponseWriter, r *http.Request) {
	result, err := h.PostService.GroupPosts(r.Context(), mux.Vars(r)["slug"], pageParam(r))
	if err != nil {
		h.writeServiceError(w, r, err, nil)
		return
	}

	writeSuccess(w, result, http.StatusOK)
}

func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	result, err := h.PostService.Profile(r.Context(), actorFromRequest(r), mux.Vars(r)["username"], pageParam(r))
	if err != nil {
		h.writeServiceError(w, r, err, nil)
		return
	}

	writeSuccess(w, result, http.StatusOK)
}

func (h *Handlers) PostDetail(w http.ResponseWriter, r *http.Request) {
	postID, err := postIDFromPath(r)
	if err != nil {
		h.writeServiceError(w, r, err, nil)
		return
	}

	detail, err := h.PostService.Detail(r.Context(), postID)
	if err != nil {
		h.writeServiceError(w, r, err, nil)
		return
	}

	writeSuccess(w, PostDetailResponse{PostDetail: detail, Form: forms.CommentFields}, http.StatusOK)
}

func (h *Handlers) postForm(w http.ResponseWriter, r *http.Request, post *models.Post) {
	groups, err := h.GroupService.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, nil)
		return
	}

	writeSuccess(w, PostFormResponse{
		Form:   forms.PostFields,
		Groups: groups,
		IsEdit: post != nil,
		Post:   post,
	}, http.StatusOK)
}

// CreatePost renders the empty form on GET and saves the post on POST.
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.postForm(w, r, nil)
		return
	}

	form, closeFile, err := h.decodePostForm(w, r)
	defer closeFile()
	if err != nil {
		writeDecodeError(w, err, form)
		return
	}

	actor := actorFromRequest(r)
	if _, err := h.PostService.CreatePost(r.Context(), actor, form); err != nil {
		h.writeServiceError(w, r, err, form)
		return
	}

	redirect(w, r, profileURL(actor.Username))
}

// EditPost sends anyone but the author back to the post without an error.
func (h *Handlers) EditPost(w http.ResponseWriter, r *http.Request) {
	postID, err := postIDFromPath(r)
	if err != nil {
		h.writeServiceError(w, r, err, nil)
		return
	}

	actor := actorFromRequest(r)

	if r.Method == http.MethodGet {
		post, err := h.PostService.PostForEdit(r.Context(), actor, postID)
		if errors.Is(err, models.ErrForbidden) && post != nil {
			redirect(w, r, postURL(post.ID))
			return
		}
		if err != nil {
			h.writeServiceError(w, r, err, nil)
			return
		}
		h.postForm(w, r, post)
		return
	}

	form, closeFile, err := h.decodePostForm(w, r)
	defer closeFile()
	if err != nil {
		// Authorship wins over form errors.
		post, checkErr := h.PostService.PostForEdit(r.Context(), actor, postID)
		if errors.Is(checkErr, models.ErrForbidden) && post != nil {
			redirect(w, r, postURL(post.ID))
			return
		}
		if checkErr != nil {
			h.writeServiceError(w, r, checkErr, nil)
			return
		}
		writeDecodeError(w, err, form)
		return
	}

	post, err := h.PostService.EditPost(r.Context(), actor, postID, form)
	if errors.Is(err, models.ErrForbidden) && post != nil {
		redirect(w, r, postURL(post.ID))
		return
	}
	if err != nil {
		h.writeServiceError(w, r, err, form)
		return
	}

	redirect(w, r, postURL(post.ID))
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, err := postIDFromPath(r)
	if err != nil {
		h.writeServiceError(w, r, err, nil)
		return
	}

	post, err := h.PostService.DeletePost(r.Context(), actorFromRequest(r), postID)
	if err != nil {
		h.writeServiceError(w, r, err, nil)
		return
	}

	redirect(w, r, profileURL(post.AuthorUsername))
}
