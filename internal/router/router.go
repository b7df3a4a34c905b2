package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/soundroom/studio-booking/internal/auth"
	"github.com/soundroom/studio-booking/internal/handlers"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *handlers.Handler, authManager *auth.Manager) *mux.Router {
	r := mux.NewRouter()

	// CORS middleware
	r.Use(corsMiddleware)

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	// Public booking surface
	api.HandleFunc("/bookings", h.CreateBooking).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/bookings/{date}", h.GetBookingsByDate).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/bookings/{date}/slots", h.GetDaySchedule).Methods(http.MethodGet, http.MethodOptions)

	// WebSocket for live booking updates
	api.HandleFunc("/bookings/{date}/ws", h.WatchDate)

	// Admin login
	api.HandleFunc("/admin/login", h.AdminLogin).Methods(http.MethodPost, http.MethodOptions)

	// Admin surface, bearer-token gated
	admin := api.PathPrefix("").Subrouter()
	admin.Use(authManager.Middleware)
	admin.HandleFunc("/bookings", h.GetBookings).Methods(http.MethodGet, http.MethodOptions)
	admin.HandleFunc("/bookings/{id}/status", h.UpdateBookingStatus).Methods(http.MethodPatch, http.MethodOptions)
	admin.HandleFunc("/admin/ws", h.WatchAll)

	// Health check
	r.HandleFunc("/health", healthCheck).Methods(http.MethodGet)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
