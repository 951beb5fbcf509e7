package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/LogM3/Poster/internal/forms"
	"github.com/LogM3/Poster/internal/models"
)

// bodyOverhead leaves room for the text fields of a multipart post form.
const bodyOverhead = 1 << 20

var errBadRequest = errors.New("неверный формат запроса")

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// parseForm reads an urlencoded or multipart body into r.PostForm.
func (h *Handlers) parseForm(w http.ResponseWriter, r *http.Request) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %v", errBadRequest, err)
		}
		return nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+bodyOverhead)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			verr := &forms.ValidationError{}
			verr.Add("image", fmt.Sprintf("Файл слишком большой (макс. %d MB)", h.Cfg.MaxUploadSize/(1024*1024)))
			return verr
		}
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func checked(value string) bool {
	switch strings.ToLower(value) {
	case "", "0", "false", "off":
		return false
	}
	return true
}

// decodePostForm binds text, group, image and the image-clear checkbox.
// The returned closer releases the uploaded file, if any.
func (h *Handlers) decodePostForm(w http.ResponseWriter, r *http.Request) (*forms.PostForm, func(), error) {
	noop := func() {}
	form := &forms.PostForm{}

	if isJSON(r) {
		return form, noop, decodeJSON(r, form)
	}

	if err := h.parseForm(w, r); err != nil {
		return form, noop, err
	}

	form.Text = r.PostFormValue("text")
	form.ImageClear = checked(r.PostFormValue("image-clear"))

	if raw := strings.TrimSpace(r.PostFormValue("group")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			verr := &forms.ValidationError{}
			verr.Add("group", forms.InvalidChoice)
			return form, noop, verr
		}
		form.Group = &id
	}

	if r.MultipartForm == nil {
		return form, noop, nil
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return form, noop, nil
		}
		return form, noop, fmt.Errorf("%w: %v", errBadRequest, err)
	}

	form.Image = uploadFrom(file, header)
	return form, func() { file.Close() }, nil
}

func uploadFrom(file multipart.File, header *multipart.FileHeader) *forms.Upload {
	return &forms.Upload{
		Filename:    header.Filename,
		Size:        header.Size,
		File:        file,
		ContentType: header.Header.Get("Content-Type"),
	}
}

func (h *Handlers) decodeCommentForm(w http.ResponseWriter, r *http.Request) (*forms.CommentForm, error) {
	form := &forms.CommentForm{}
	if isJSON(r) {
		return form, decodeJSON(r, form)
	}
	if err := h.parseForm(w, r); err != nil {
		return form, err
	}
	form.Text = r.PostFormValue("text")
	return form, nil
}

func (h *Handlers) decodeSignupForm(w http.ResponseWriter, r *http.Request) (*forms.SignupForm, error) {
	form := &forms.SignupForm{}
	if isJSON(r) {
		return form, decodeJSON(r, form)
	}
	if err := h.parseForm(w, r); err != nil {
		return form, err
	}
	form.FirstName = r.PostFormValue("first_name")
	form.LastName = r.PostFormValue("last_name")
	form.Username = r.PostFormValue("username")
	form.Email = r.PostFormValue("email")
	form.Password = r.PostFormValue("password")
	return form, nil
}

func (h *Handlers) decodeLoginForm(w http.ResponseWriter, r *http.Request) (*forms.LoginForm, error) {
	form := &forms.LoginForm{}
	if isJSON(r) {
		return form, decodeJSON(r, form)
	}
	if err := h.parseForm(w, r); err != nil {
		return form, err
	}
	form.Username = r.PostFormValue("username")
	form.Password = r.PostFormValue("password")
	return form, nil
}

func (h *Handlers) decodeGroupForm(w http.ResponseWriter, r *http.Request) (*forms.GroupForm, error) {
	form := &forms.GroupForm{}
	if isJSON(r) {
		return form, decodeJSON(r, form)
	}
	if err := h.parseForm(w, r); err != nil {
		return form, err
	}
	form.Title = r.PostFormValue("title")
	form.Slug = r.PostFormValue("slug")
	form.Description = r.PostFormValue("description")
	return form, nil
}

// writeDecodeError answers a request whose body couldn't be bound.
func writeDecodeError(w http.ResponseWriter, err error, form interface{}) {
	if verr, ok := forms.IsValidationError(err); ok {
		writeFormErrors(w, verr, form)
		return
	}
	WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
}

// postIDFromPath reads {id}. A non-numeric id can't name a post.
func postIDFromPath(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("пост %q не найден: %w", mux.Vars(r)["id"], models.ErrNotFound)
	}
	return id, nil
}

func pageParam(r *http.Request) string {
	return r.URL.Query().Get("page")
}
