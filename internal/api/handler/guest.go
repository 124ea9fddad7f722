package handler

import (
	"encoding/json"
	"net/http"

	"github.com/cardtable/cardtable/internal/api/request"
	"github.com/cardtable/cardtable/internal/api/response"
	"github.com/cardtable/cardtable/internal/services/auth"
)

// GuestHandler handles guest identity endpoints
type GuestHandler struct {
	authService *auth.Service
}

// NewGuestHandler creates a new guest handler
func NewGuestHandler(authService *auth.Service) *GuestHandler {
	return &GuestHandler{
		authService: authService,
	}
}

// CreateGuest handles POST /api/v1/guests
func (h *GuestHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Nickname == "" {
		WriteError(w, NewInvalidRequestError("nickname is required"))
		return
	}

	session, err := h.authService.CreateGuest(req.Nickname)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}
