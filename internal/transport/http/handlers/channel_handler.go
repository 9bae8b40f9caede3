package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"vecino/internal/service"
	"vecino/internal/transport/http/middleware"
)

type ChannelHandler struct {
	channelService *service.ChannelService
}

func NewChannelHandler(channelService *service.ChannelService) *ChannelHandler {
	return &ChannelHandler{channelService: channelService}
}

// List returns every channel the caller participates in.
func (h *ChannelHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	channels, err := h.channelService.ListForUser(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR list channels: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, channels)
}

// CreateDirect resolves (or lazily creates) the caller's DM channel with the
// target user, reached through a channel both already share.
func (h *ChannelHandler) CreateDirect(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	baseChannelID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid channel ID")
		return
	}

	var input struct {
		TargetUserID uuid.UUID `json:"target_user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.TargetUserID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "MISSING_TARGET", "target_user_id is required")
		return
	}

	ch, err := h.channelService.GetOrCreateDirectChannel(r.Context(), baseChannelID, userID, input.TargetUserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCannotDMSelf):
			writeError(w, http.StatusBadRequest, "CANNOT_DM_SELF", "Cannot start a conversation with yourself")
		case errors.Is(err, service.ErrAccessDenied):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Access denied to this channel")
		case errors.Is(err, service.ErrChannelNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Channel not found")
		case errors.Is(err, service.ErrInvalidTarget):
			writeError(w, http.StatusBadRequest, "INVALID_TARGET", "Target user is not a member of this channel")
		case errors.Is(err, service.ErrChannelBlocked):
			writeError(w, http.StatusForbidden, "CHANNEL_BLOCKED", "This conversation has been blocked")
		default:
			log.Printf("ERROR create direct channel: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, ch)
}

func (h *ChannelHandler) Block(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	channelID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid channel ID")
		return
	}

	if _, err := h.channelService.BlockDirectChannel(r.Context(), channelID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrAccessDenied):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Access denied to this channel")
		case errors.Is(err, service.ErrChannelNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Channel not found")
		case errors.Is(err, service.ErrNotDirectMessage):
			writeError(w, http.StatusBadRequest, "NOT_DIRECT_MESSAGE", "Only direct message channels can be blocked")
		default:
			log.Printf("ERROR block channel: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Direct message channel successfully blocked.",
	})
}

func (h *ChannelHandler) Unblock(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	channelID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid channel ID")
		return
	}

	if _, err := h.channelService.UnblockDirectChannel(r.Context(), channelID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrAccessDenied):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Access denied to this channel")
		case errors.Is(err, service.ErrChannelNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Channel not found")
		case errors.Is(err, service.ErrNotDirectMessage):
			writeError(w, http.StatusBadRequest, "NOT_DIRECT_MESSAGE", "Only direct message channels can be unblocked")
		case errors.Is(err, service.ErrNotBlocked):
			writeError(w, http.StatusBadRequest, "NOT_BLOCKED", "This channel is not blocked")
		case errors.Is(err, service.ErrNotBlocker):
			writeError(w, http.StatusForbidden, "NOT_BLOCKER", "You are not authorized to unblock this channel because you did not block it")
		default:
			log.Printf("ERROR unblock channel: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Direct message channel successfully unblocked.",
	})
}
