package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/ltomic/threadline/internal/config"
	"github.com/ltomic/threadline/internal/database"
	postgresrepo "github.com/ltomic/threadline/internal/repository/postgres"
	"github.com/ltomic/threadline/internal/service"
	"github.com/ltomic/threadline/internal/transport/http/handlers"
	"github.com/ltomic/threadline/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	if err := database.Migrate(context.Background(), pool); err != nil {
		log.Fatal(err)
	}

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	threadRepo := postgresrepo.NewThreadRepo(pool)
	messageRepo := postgresrepo.NewMessageRepo(pool)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	threadService := service.NewThreadService(threadRepo, userRepo)
	messageService := service.NewMessageService(messageRepo, threadRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	threadHandler := handlers.NewThreadHandler(threadService)
	messageHandler := handlers.NewMessageHandler(messageService)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", authHandler.Refresh)

	// Protected - Threads
	mux.Handle("POST /api/v1/threads", auth(http.HandlerFunc(threadHandler.Create)))
	mux.Handle("GET /api/v1/threads", auth(http.HandlerFunc(threadHandler.List)))
	mux.Handle("DELETE /api/v1/threads/{id}", auth(http.HandlerFunc(threadHandler.Delete)))

	// Protected - Messages
	mux.Handle("POST /api/v1/threads/{id}/messages", auth(http.HandlerFunc(messageHandler.Send)))
	mux.Handle("GET /api/v1/threads/{id}/messages", auth(http.HandlerFunc(messageHandler.List)))
	mux.Handle("DELETE /api/v1/threads/{id}/messages/{mid}", auth(http.HandlerFunc(messageHandler.Delete)))
	mux.Handle("PATCH /api/v1/messages/{id}/mark-as-read", auth(http.HandlerFunc(messageHandler.MarkRead)))
	mux.Handle("GET /api/v1/messages/unread-messages-count", auth(http.HandlerFunc(messageHandler.UnreadCount)))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(mux)))
}
