package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"centavo/internal/domain/notification"
	"centavo/internal/shared/messages"
	"centavo/internal/shared/middleware"
)

// NotificationHandler exposes notification and device registration endpoints
type NotificationHandler struct {
	notificationService *notification.Service
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

type RegisterDeviceRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

// HandleNotifications lists the user's notifications, newest first
func (h *NotificationHandler) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, messages.ErrUnauthenticated)
		return
	}
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, messages.ErrInvalidPayload)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	notifications, err := h.notificationService.ListNotifications(r.Context(), userID, limit)
	if err != nil {
		log.Printf("Error listing notifications for user %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, messages.ErrInternal)
		return
	}

	if notifications == nil {
		notifications = []*notification.Notification{}
	}
	respondData(w, http.StatusOK, notifications)
}

// HandleMarkOpened marks a notification as opened
func (h *NotificationHandler) HandleMarkOpened(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, messages.ErrUnauthenticated)
		return
	}
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, messages.ErrInvalidPayload)
		return
	}

	notificationID := r.PathValue("id")
	if notificationID == "" {
		respondError(w, http.StatusBadRequest, messages.ErrInvalidPayload)
		return
	}

	if err := h.notificationService.MarkOpened(r.Context(), notificationID, userID); err != nil {
		log.Printf("Error marking notification %s opened: %v", notificationID, err)
		respondError(w, http.StatusInternalServerError, messages.ErrInternal)
		return
	}
	respondOK(w)
}

// HandleRegisterDevice registers a push token for the authenticated user
func (h *NotificationHandler) HandleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, messages.ErrUnauthenticated)
		return
	}
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, messages.ErrInvalidPayload)
		return
	}

	var req RegisterDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, messages.ErrInvalidPayload)
		return
	}

	registered, err := h.notificationService.RegisterDevice(r.Context(), notification.CreateDeviceTokenParams{
		UserID:   userID,
		Token:    req.Token,
		Platform: req.Platform,
	})
	if err != nil {
		if errors.Is(err, notification.ErrInvalidToken) {
			respondError(w, http.StatusBadRequest, messages.ErrInvalidPayload)
			return
		}
		log.Printf("Error registering device for user %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, messages.ErrInternal)
		return
	}

	respondData(w, http.StatusCreated, registered)
}
