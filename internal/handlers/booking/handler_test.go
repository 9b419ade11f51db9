package booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "roombooker/infras/otel/mocks"
	bookingMocks "roombooker/internal/domains/booking/mocks"
	"roombooker/internal/domains/booking/model"
	"roombooker/internal/domains/booking/model/dto"
	"roombooker/shared/failure"
)

const (
	bookingID = "0b8e4f5a-0000-4000-8000-00000000000b"
	roomID    = "6f1c2a8e-0000-4000-8000-000000000001"
	token     = "c4a1d2e3-0000-4000-8000-0000000000ca"
)

func newRouter(t *testing.T) (*chi.Mux, *bookingMocks.MockBookingService) {
	t.Helper()

	svc := bookingMocks.NewMockBookingService(gomock.NewController(t))
	handler := New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var body struct {
		Data T `json:"data"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())

	return body.Data
}

func TestCreateBooking(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error) {
		assert.Equal(t, roomID, req.RoomID)
		assert.Equal(t, "09:00", req.StartTime)

		return dto.CreateBookingResponse{
			BookingResponse: dto.BookingResponse{
				ID:        bookingID,
				RoomID:    req.RoomID,
				Date:      req.Date,
				StartTime: req.StartTime,
				EndTime:   req.EndTime,
				Status:    string(model.StatusPending),
			},
			CancellationToken: token,
		}, nil
	})

	rec := do(router, http.MethodPost, "/bookings/", `{
		"room_id": "`+roomID+`",
		"full_name": "Ana Souza",
		"area": "Finance",
		"email": "ana@example.com",
		"reason": "Quarterly review",
		"date": "2025-03-12",
		"start_time": "09:00",
		"end_time": "10:30"
	}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	booking := decode[dto.CreateBookingResponse](t, rec)
	assert.Equal(t, bookingID, booking.ID)
	assert.Equal(t, string(model.StatusPending), booking.Status)
	assert.Equal(t, token, booking.CancellationToken)
}

func TestCreateBooking_Errors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(svc *bookingMocks.MockBookingService)
		wantCode  int
	}{
		{
			name:      "missing fields",
			body:      `{"room_id": "` + roomID + `"}`,
			setupMock: func(*bookingMocks.MockBookingService) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "malformed json",
			body:      `{"room_id":`,
			setupMock: func(*bookingMocks.MockBookingService) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "overlapping booking",
			body: `{"room_id": "` + roomID + `", "full_name": "Ana Souza", "area": "Finance", "email": "ana@example.com",
				"reason": "Quarterly review", "date": "2025-03-12", "start_time": "09:00", "end_time": "10:30"}`,
			setupMock: func(svc *bookingMocks.MockBookingService) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.CreateBookingResponse{}, failure.Conflict("room is already booked for this time"))
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)
			tt.setupMock(svc)

			rec := do(router, http.MethodPost, "/bookings/", tt.body)

			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
		})
	}
}

func TestApproveBooking(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Approve(gomock.Any(), bookingID).Return(dto.BookingResponse{ID: bookingID, Status: string(model.StatusApproved), ApprovedBy: "admin"}, nil)

	rec := do(router, http.MethodPut, "/bookings/"+bookingID+"/approve", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	booking := decode[dto.BookingResponse](t, rec)
	assert.Equal(t, string(model.StatusApproved), booking.Status)
	assert.Equal(t, "admin", booking.ApprovedBy)
}

func TestRejectBooking_RequiresReason(t *testing.T) {
	router, _ := newRouter(t)

	rec := do(router, http.MethodPut, "/bookings/"+bookingID+"/reject", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyCancellationToken(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().VerifyToken(gomock.Any(), token).Return(dto.VerifyTokenResponse{ID: bookingID, Status: string(model.StatusPending), CanCancel: true}, nil)

	rec := do(router, http.MethodGet, "/bookings/cancel/"+token, "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	summary := decode[dto.VerifyTokenResponse](t, rec)
	assert.True(t, summary.CanCancel)

	rec = do(router, http.MethodGet, "/bookings/cancel/not-a-token", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
