package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/soundroom/studio-booking/internal/auth"
	"github.com/soundroom/studio-booking/internal/database"
	"github.com/soundroom/studio-booking/internal/service"
	"github.com/soundroom/studio-booking/internal/websocket"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	bookingService service.BookingService
	authManager    *auth.Manager
	hub            *websocket.Hub
}

// NewHandler creates a new Handler instance. hub may be nil when the push
// channel is not wired.
func NewHandler(bookingService service.BookingService, authManager *auth.Manager, hub *websocket.Hub) *Handler {
	return &Handler{
		bookingService: bookingService,
		authManager:    authManager,
		hub:            hub,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// CreateBooking handles POST /api/bookings
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req database.InsertBooking
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid booking data")
		return
	}

	booking, err := h.bookingService.CreateBooking(r.Context(), req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			respondError(w, http.StatusBadRequest, "Invalid booking data")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	respondJSON(w, http.StatusOK, booking)
}

// GetBookings handles GET /api/bookings
func (h *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingService.GetBookings(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load bookings")
		return
	}
	respondJSON(w, http.StatusOK, bookings)
}

// GetBookingsByDate handles GET /api/bookings/{date}
func (h *Handler) GetBookingsByDate(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	bookings, err := h.bookingService.GetBookingsByDate(r.Context(), date)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load bookings")
		return
	}
	respondJSON(w, http.StatusOK, bookings)
}

// GetDaySchedule handles GET /api/bookings/{date}/slots
func (h *Handler) GetDaySchedule(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	slots, err := h.bookingService.GetDaySchedule(r.Context(), date)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load schedule")
		return
	}
	respondJSON(w, http.StatusOK, slots)
}

// UpdateBookingStatus handles PATCH /api/bookings/{id}/status
func (h *Handler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "Booking not found")
		return
	}

	var req struct {
		Status database.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	var booking *database.Booking
	switch req.Status {
	case database.StatusApproved:
		booking, err = h.bookingService.Approve(r.Context(), id)
	case database.StatusRejected:
		booking, err = h.bookingService.Reject(r.Context(), id)
	default:
		respondError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			respondError(w, http.StatusNotFound, "Booking not found")
		case errors.Is(err, database.ErrAlreadyDecided):
			respondError(w, http.StatusBadRequest, "Booking already decided")
		default:
			respondError(w, http.StatusInternalServerError, "Failed to update booking")
		}
		return
	}

	respondJSON(w, http.StatusOK, booking)
}

// AdminLogin handles POST /api/admin/login
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !h.authManager.CheckPassword(req.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	token, err := h.authManager.IssueToken()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// WatchDate handles GET /api/bookings/{date}/ws
func (h *Handler) WatchDate(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		respondError(w, http.StatusNotFound, "Live updates not enabled")
		return
	}
	h.hub.ServeWS(w, r, mux.Vars(r)["date"])
}

// WatchAll handles GET /api/admin/ws; admin clients see every date
func (h *Handler) WatchAll(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		respondError(w, http.StatusNotFound, "Live updates not enabled")
		return
	}
	h.hub.ServeWS(w, r, websocket.AllDates)
}
