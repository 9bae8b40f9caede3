package main

import (
	"fmt"
	"log"
	"net/http"

	"vecino/internal/config"
	"vecino/internal/database"
	postgresrepo "vecino/internal/repository/postgres"
	"vecino/internal/service"
	"vecino/internal/transport/http/handlers"
	"vecino/internal/transport/http/middleware"
	"vecino/internal/transport/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	communityRepo := postgresrepo.NewCommunityRepo(pool)
	channelRepo := postgresrepo.NewChannelRepo(pool)
	messageRepo := postgresrepo.NewMessageRepo(pool)
	notifRepo := postgresrepo.NewNotificationRepo(pool)

	// Services
	access := service.NewAccess(channelRepo, messageRepo, communityRepo)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	communityService := service.NewCommunityService(communityRepo, channelRepo, access)
	channelService := service.NewChannelService(channelRepo, access)
	messageService := service.NewMessageService(messageRepo, channelRepo, notifRepo, access)
	notificationService := service.NewNotificationService(notifRepo)

	// Fan-out hub
	hub := ws.NewHub()
	messageService.SetBroadcaster(ws.NewHubBroadcaster(hub))

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	communityHandler := handlers.NewCommunityHandler(communityService)
	channelHandler := handlers.NewChannelHandler(channelService)
	messageHandler := handlers.NewMessageHandler(messageService)
	alertHandler := handlers.NewAlertHandler(notificationService)

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

	// Protected - Communities
	mux.Handle("POST /api/v1/communities", auth(http.HandlerFunc(communityHandler.Create)))
	mux.Handle("POST /api/v1/communities/{id}/members", auth(http.HandlerFunc(communityHandler.AddMember)))

	// Protected - Chat
	mux.Handle("GET /api/v1/chat/channels", auth(http.HandlerFunc(channelHandler.List)))
	mux.Handle("POST /api/v1/chat/channels/{id}/direct", auth(http.HandlerFunc(channelHandler.CreateDirect)))
	mux.Handle("POST /api/v1/chat/channels/{id}/block", auth(http.HandlerFunc(channelHandler.Block)))
	mux.Handle("POST /api/v1/chat/channels/{id}/unblock", auth(http.HandlerFunc(channelHandler.Unblock)))
	mux.Handle("GET /api/v1/chat/channels/{id}/messages", auth(http.HandlerFunc(messageHandler.History)))
	mux.Handle("POST /api/v1/chat/channels/{id}/messages", auth(http.HandlerFunc(messageHandler.Send)))
	mux.Handle("PUT /api/v1/chat/channels/{id}/messages/{mid}", auth(http.HandlerFunc(messageHandler.Edit)))
	mux.Handle("DELETE /api/v1/chat/channels/{id}/messages/{mid}", auth(http.HandlerFunc(messageHandler.Delete)))

	// Protected - Alerts
	mux.Handle("GET /api/v1/alerts", auth(http.HandlerFunc(alertHandler.List)))
	mux.Handle("PUT /api/v1/alerts/{id}/read", auth(http.HandlerFunc(alertHandler.MarkRead)))

	// Live feed (token auth via query param)
	mux.HandleFunc("GET /api/v1/chat/ws/{id}", ws.ServeWS(hub, cfg.JWTSecret))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(mux)))
}
