package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/LogM3/Poster/cmd/app"
	"github.com/LogM3/Poster/internal/config"
	"github.com/LogM3/Poster/internal/database"
	handlers "github.com/LogM3/Poster/internal/handler"
	"github.com/LogM3/Poster/internal/middleware"
	"github.com/LogM3/Poster/internal/models"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, services := app.App(cfg)
	defer database.MethodsDB.CloseDB(db)

	handler := handlers.NewHandlers(services, db, cfg)

	router := handlers.NewRouter(
		handler,
		middleware.LoginRequired(cfg.LoginURL),
		middleware.RoleMiddleware(models.RoleAdmin),
	)

	handlerChain := middleware.Chain(
		router,
		middleware.Authenticate(services.Auth),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
		middleware.Recover,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Сервер запущен на %s", addr)
	log.Printf("База данных: %s", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
