package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/soundroom/studio-booking/internal/auth"
	"github.com/soundroom/studio-booking/internal/database"
	"github.com/soundroom/studio-booking/internal/schedule"
	"github.com/soundroom/studio-booking/internal/service"
	"github.com/soundroom/studio-booking/internal/service/mocks"
)

func setupTestRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/bookings", h.CreateBooking).Methods(http.MethodPost)
	api.HandleFunc("/bookings", h.GetBookings).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{date}", h.GetBookingsByDate).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{date}/slots", h.GetDaySchedule).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/status", h.UpdateBookingStatus).Methods(http.MethodPatch)
	api.HandleFunc("/admin/login", h.AdminLogin).Methods(http.MethodPost)
	return r
}

func newTestAuthManager(t *testing.T) *auth.Manager {
	t.Helper()
	hash, err := auth.HashPassword("practice-room")
	require.NoError(t, err)
	return auth.NewManager(hash, "test-secret")
}

func TestHandler_CreateBooking(t *testing.T) {
	created := &database.Booking{
		ID:           1,
		CustomerName: "Kim",
		PhoneNumber:  "010-1234-5678",
		Date:         "2024-06-01",
		StartTime:    "14:00",
		Duration:     2,
		Status:       database.StatusPending,
	}

	tests := []struct {
		name           string
		body           string
		mockReturn     *database.Booking
		mockError      error
		expectMockCall bool
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "valid booking",
			body:           `{"customerName":"Kim","phoneNumber":"010-1234-5678","date":"2024-06-01","startTime":"14:00","duration":2}`,
			mockReturn:     created,
			expectMockCall: true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "validation failure",
			body:           `{"customerName":"","phoneNumber":"010-1234-5678","date":"2024-06-01","startTime":"14:00","duration":2}`,
			mockError:      &service.ValidationError{Message: "Please enter your name"},
			expectMockCall: true,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid booking data",
		},
		{
			name:           "malformed body",
			body:           `{"customerName":`,
			expectMockCall: false,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid booking data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.MockBookingService)
			handler := NewHandler(mockService, newTestAuthManager(t), nil)
			router := setupTestRouter(handler)

			if tt.expectMockCall {
				mockService.On("CreateBooking", mock.Anything, mock.Anything).Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedError != "" {
				var response map[string]string
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
				assert.Equal(t, tt.expectedError, response["error"])
			} else {
				var response database.Booking
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
				assert.Equal(t, int64(1), response.ID)
				assert.Equal(t, database.StatusPending, response.Status)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_GetBookings(t *testing.T) {
	mockService := new(mocks.MockBookingService)
	handler := NewHandler(mockService, newTestAuthManager(t), nil)
	router := setupTestRouter(handler)

	expected := []database.Booking{
		{ID: 1, CustomerName: "Kim", Date: "2024-06-01", StartTime: "14:00", Duration: 2, Status: database.StatusPending},
		{ID: 2, CustomerName: "Lee", Date: "2024-06-02", StartTime: "10:00", Duration: 1, Status: database.StatusApproved},
	}
	mockService.On("GetBookings", mock.Anything).Return(expected, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []database.Booking
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Len(t, response, 2)
	assert.Equal(t, "Kim", response[0].CustomerName)

	mockService.AssertExpectations(t)
}

func TestHandler_GetBookingsByDate(t *testing.T) {
	mockService := new(mocks.MockBookingService)
	handler := NewHandler(mockService, newTestAuthManager(t), nil)
	router := setupTestRouter(handler)

	expected := []database.Booking{
		{ID: 1, CustomerName: "Kim", Date: "2024-06-01", StartTime: "14:00", Duration: 2, Status: database.StatusPending},
	}
	mockService.On("GetBookingsByDate", mock.Anything, "2024-06-01").Return(expected, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/2024-06-01", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []database.Booking
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	require.Len(t, response, 1)
	assert.Equal(t, "2024-06-01", response[0].Date)

	mockService.AssertExpectations(t)
}

func TestHandler_GetDaySchedule(t *testing.T) {
	mockService := new(mocks.MockBookingService)
	handler := NewHandler(mockService, newTestAuthManager(t), nil)
	router := setupTestRouter(handler)

	grid := schedule.Grid("2024-06-01", []database.Booking{
		{Date: "2024-06-01", StartTime: "14:00", Duration: 2, Status: database.StatusPending},
	})
	mockService.On("GetDaySchedule", mock.Anything, "2024-06-01").Return(grid, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/2024-06-01/slots", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []schedule.Slot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	require.Len(t, response, schedule.SlotCount)
	assert.Equal(t, schedule.SlotPending, response[schedule.SlotIndex("14:30")].Status)
	assert.Equal(t, schedule.SlotFree, response[schedule.SlotIndex("16:00")].Status)

	mockService.AssertExpectations(t)
}

func TestHandler_UpdateBookingStatus(t *testing.T) {
	approved := &database.Booking{ID: 1, Status: database.StatusApproved}
	rejected := &database.Booking{ID: 1, Status: database.StatusRejected}

	tests := []struct {
		name           string
		id             string
		body           string
		mockMethod     string
		mockReturn     *database.Booking
		mockError      error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "approve",
			id:             "1",
			body:           `{"status":"approved"}`,
			mockMethod:     "Approve",
			mockReturn:     approved,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "reject",
			id:             "1",
			body:           `{"status":"rejected"}`,
			mockMethod:     "Reject",
			mockReturn:     rejected,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid status",
			id:             "1",
			body:           `{"status":"cancelled"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid status",
		},
		{
			name:           "unknown id",
			id:             "999",
			body:           `{"status":"approved"}`,
			mockMethod:     "Approve",
			mockError:      database.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectedError:  "Booking not found",
		},
		{
			name:           "non-numeric id",
			id:             "abc",
			body:           `{"status":"approved"}`,
			expectedStatus: http.StatusNotFound,
			expectedError:  "Booking not found",
		},
		{
			name:           "already decided",
			id:             "1",
			body:           `{"status":"rejected"}`,
			mockMethod:     "Reject",
			mockError:      database.ErrAlreadyDecided,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Booking already decided",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.MockBookingService)
			handler := NewHandler(mockService, newTestAuthManager(t), nil)
			router := setupTestRouter(handler)

			if tt.mockMethod != "" {
				mockService.On(tt.mockMethod, mock.Anything, mock.Anything).Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPatch, "/api/bookings/"+tt.id+"/status", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedError != "" {
				var response map[string]string
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
				assert.Equal(t, tt.expectedError, response["error"])
			} else {
				var response database.Booking
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
				assert.Equal(t, tt.mockReturn.Status, response.Status)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_AdminLogin(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"correct password", `{"password":"practice-room"}`, http.StatusOK},
		{"wrong password", `{"password":"wrong"}`, http.StatusUnauthorized},
		{"malformed body", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.MockBookingService)
			authManager := newTestAuthManager(t)
			handler := NewHandler(mockService, authManager, nil)
			router := setupTestRouter(handler)

			req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusOK {
				var response map[string]string
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
				require.NotEmpty(t, response["token"])
				assert.NoError(t, authManager.VerifyToken(response["token"]))
			}
		})
	}
}
