package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"vecino/internal/service"
	"vecino/internal/transport/http/middleware"
)

type AlertHandler struct {
	notificationService *service.NotificationService
}

func NewAlertHandler(notificationService *service.NotificationService) *AlertHandler {
	return &AlertHandler{notificationService: notificationService}
}

func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	alerts, err := h.notificationService.ListForUser(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR list alerts: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, alerts)
}

func (h *AlertHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	alertID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid alert ID")
		return
	}

	alert, err := h.notificationService.MarkRead(r.Context(), alertID, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Alert not found or access denied")
		} else {
			log.Printf("ERROR mark alert read: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, alert)
}
