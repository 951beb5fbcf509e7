package handlers

import (
	"net/http"
)

type AboutResponse struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type NotFoundResponse struct {
	Error string `json:"error"`
	Path  string `json:"path"`
}

func (h *Handlers) AboutAuthor(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, AboutResponse{
		Title: "Об авторе",
		Text:  "Блог-платформа с группами, комментариями и подписками на авторов.",
	}, http.StatusOK)
}

func (h *Handlers) AboutTech(w http.ResponseWriter, r *http.Request) {
	info, err := h.AboutService.Tech(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, nil)
		return
	}

	writeSuccess(w, info, http.StatusOK)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		WriteError(w, "База данных недоступна", http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// NotFound is the answer for unknown routes and missing objects alike.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, NotFoundResponse{Error: "Страница не найдена", Path: r.URL.Path}, http.StatusNotFound)
}
