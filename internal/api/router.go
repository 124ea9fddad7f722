package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cardtable/cardtable/internal/api/handler"
	"github.com/cardtable/cardtable/internal/api/middleware"
	"github.com/cardtable/cardtable/internal/services/auth"
	"github.com/cardtable/cardtable/internal/services/room"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	RoomController *room.Controller
	Notifier       handler.Notifier
	WSHandler      http.HandlerFunc
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	guestHandler := handler.NewGuestHandler(cfg.AuthService)
	roomHandler := handler.NewRoomHandler(cfg.RoomController, cfg.Notifier)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Guest identity (no auth required, this is how you get a token)
	api.HandleFunc("/guests", guestHandler.CreateGuest).Methods(http.MethodPost)

	// Room routes (all require auth)
	rooms := api.PathPrefix("/rooms").Subrouter()
	rooms.Use(authMiddleware)
	rooms.HandleFunc("", roomHandler.Create).Methods(http.MethodPost)
	rooms.HandleFunc("", roomHandler.List).Methods(http.MethodGet)
	rooms.HandleFunc("/{room_id}", roomHandler.Get).Methods(http.MethodGet)
	rooms.HandleFunc("/{room_id}/join", roomHandler.Join).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/leave", roomHandler.Leave).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/toggle-ready", roomHandler.ToggleReady).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/start", roomHandler.Start).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/restart", roomHandler.Restart).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Websocket endpoint; auth happens via the token query parameter during
	// the upgrade, not the bearer-header middleware
	if cfg.WSHandler != nil {
		r.HandleFunc("/ws", cfg.WSHandler)
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
