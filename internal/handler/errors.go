package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/LogM3/Poster/internal/forms"
	"github.com/LogM3/Poster/internal/models"
)

const invalidLogin = "Пожалуйста, введите правильные имя пользователя и пароль. Оба поля могут быть чувствительны к регистру."

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// FormErrorResponse - ответ на невалидную форму
type FormErrorResponse struct {
	Errors map[string][]string `json:"errors"`
	Form   interface{}         `json:"form"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeSuccess(w, ErrorResponse{Error: message}, statusCode)
}

// writeSuccess - функция для успешных ответов
func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ошибка записи ответа: %v", err)
	}
}

func writeFormErrors(w http.ResponseWriter, verr *forms.ValidationError, form interface{}) {
	writeSuccess(w, FormErrorResponse{Errors: verr.Fields, Form: form}, http.StatusBadRequest)
}

// writeServiceError maps a service error onto the HTTP answer. form is echoed
// back together with field errors.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error, form interface{}) {
	if verr, ok := forms.IsValidationError(err); ok {
		writeFormErrors(w, verr, form)
		return
	}

	switch {
	case errors.Is(err, models.ErrNotFound):
		h.NotFound(w, r)
	case errors.Is(err, models.ErrInvalidCredentials):
		verr := &forms.ValidationError{}
		verr.Add("__all__", invalidLogin)
		writeFormErrors(w, verr, form)
	case errors.Is(err, models.ErrInvalidToken):
		WriteError(w, "Refresh Token истек или недействителен", http.StatusUnauthorized)
	case errors.Is(err, models.ErrForbidden):
		WriteError(w, "Доступ запрещен", http.StatusForbidden)
	case errors.Is(err, models.ErrAlreadyExists):
		WriteError(w, err.Error(), http.StatusConflict)
	default:
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		WriteError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}
