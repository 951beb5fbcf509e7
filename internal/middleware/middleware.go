package middleware

import (
	"log"
	"net/http"
	"net/url"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/felixge/httpsnoop"

	handlers "github.com/LogM3/Poster/internal/handler"
	"github.com/LogM3/Poster/internal/service"
)

type Middleware func(http.Handler) http.Handler

// Authenticate puts the caller into the request context. The token comes from
// the Authorization header or the access_token cookie. A missing or broken
// token leaves the request anonymous; LoginRequired decides what to do next.
func Authenticate(authService service.AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				if cookie, err := r.Cookie("access_token"); err == nil {
					tokenString = cookie.Value
				}
			}

			if tokenString == "" {
				next.ServeHTTP(w, r)
				return
			}

			actor, err := authService.ActorFromToken(tokenString)
			if err != nil {
				log.Printf("токен отклонен: %v", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(handlers.WithActor(r.Context(), actor)))
		})
	}
}

// Checking the "Bearer <token>" format
func bearerToken(r *http.Request) string {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// LoginRequired sends anonymous callers to loginURL, keeping the requested
// path in next.
func LoginRequired(loginURL string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if handlers.ActorFromContext(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}

			back := strings.ReplaceAll(url.QueryEscape(r.URL.RequestURI()), "%2F", "/")
			http.Redirect(w, r, loginURL+"?next="+back, http.StatusFound)
		})
	}
}

func RoleMiddleware(allowedRoles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := handlers.ActorFromContext(r.Context())
			if actor == nil {
				handlers.WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
				return
			}

			if !slices.Contains(allowedRoles, actor.Role) {
				handlers.WriteError(w, "Доступ запрещен", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		log.Printf("%s %s %d %dB %s", r.Method, r.URL.RequestURI(), m.Code, m.Written, m.Duration)
	})
}

// Recover turns a panic in a handler into a 500 answer.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("паника при обработке %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				handlers.WriteError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// Chain wraps h so that the last middleware listed runs first.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
