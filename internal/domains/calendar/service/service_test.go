package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roombooker/config"
	otelMocks "roombooker/infras/otel/mocks"
	bookingMocks "roombooker/internal/domains/booking/mocks"
	bookingModel "roombooker/internal/domains/booking/model"
	"roombooker/internal/domains/calendar/grid"
	"roombooker/internal/domains/calendar/model/dto"
	"roombooker/internal/domains/calendar/service"
	roomMocks "roombooker/internal/domains/room/mocks"
	roomModel "roombooker/internal/domains/room/model"
	gDto "roombooker/shared/dto"
	"roombooker/shared/failure"
	"roombooker/shared/timezone"
)

const roomID = "6f1c2a8e-0000-4000-8000-000000000001"

func newService(t *testing.T) (service.Calendar, *roomMocks.MockRoom, *bookingMocks.MockBooking) {
	t.Helper()

	ctrl := gomock.NewController(t)
	roomRepo := roomMocks.NewMockRoom(ctrl)
	bookingRepo := bookingMocks.NewMockBooking(ctrl)

	cfg := &config.Config{}
	cfg.App.Calendar.DayStart = "07:00"
	cfg.App.Calendar.DayEnd = "20:00"
	cfg.App.Calendar.SlotMinutes = 30

	// Sunday before the requested week, so no slot is in the past
	clock := timezone.FixedClock(time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC))

	return service.New(roomRepo, bookingRepo, clock, cfg, otelMocks.NewOtel()), roomRepo, bookingRepo
}

func TestCalendarService_GetWeek(t *testing.T) {
	svc, roomRepo, bookingRepo := newService(t)

	roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{
		ID:             roomID,
		AvailableDays:  []int64{1, 2, 3, 4, 5},
		AvailableStart: "07:00",
		AvailableEnd:   "20:00",
	}, nil)

	bookingRepo.EXPECT().
		GetAll(gomock.Any(), gDto.QueryParams{SortBy: bookingModel.FieldStartTime, SortDir: gDto.SortDirAsc}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]bookingModel.Booking, error) {
			_, args := filter.GetWhereClause()

			assert.Equal(t, roomID, args["room_id"])
			assert.Equal(t, "2025-03-10", args["week_from"])
			assert.Equal(t, "2025-03-17", args["week_to"])
			assert.Equal(t, "pending", args["status_0"])
			assert.Equal(t, "approved", args["status_1"])

			return []bookingModel.Booking{{
				ID:        "b-1",
				Date:      time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
				StartTime: "10:00",
				EndTime:   "11:00",
				Status:    bookingModel.StatusApproved,
			}}, nil
		})

	res, err := svc.GetWeek(context.Background(), dto.CalendarRequest{RoomID: roomID, WeekStart: "2025-03-10"})

	require.NoError(t, err)
	assert.Equal(t, roomID, res.RoomID)
	assert.Equal(t, "2025-03-10", res.WeekStart)
	require.Len(t, res.Days, grid.DaysInWeek)

	tuesday := res.Days[1]
	assert.Equal(t, "2025-03-11", tuesday.Date)
	assert.Equal(t, int(time.Tuesday), tuesday.Weekday)

	for _, slot := range tuesday.Slots {
		if slot.Time == "10:00" || slot.Time == "10:30" {
			assert.Equal(t, grid.StatusOccupied, slot.Status)
			assert.Equal(t, "b-1", slot.BookingID)
			assert.Equal(t, 60, slot.Duration)
		}
	}

	for _, slot := range res.Days[5].Slots {
		assert.Equal(t, grid.StatusBlocked, slot.Status, "saturday %s", slot.Time)
	}
}

func TestCalendarService_GetWeek_Errors(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CalendarRequest
		setupMock func(room *roomMocks.MockRoom, booking *bookingMocks.MockBooking)
		wantCode  int
	}{
		{
			name:      "missing room",
			req:       dto.CalendarRequest{WeekStart: "2025-03-10"},
			setupMock: func(*roomMocks.MockRoom, *bookingMocks.MockBooking) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "bad week start",
			req:       dto.CalendarRequest{RoomID: roomID, WeekStart: "10/03/2025"},
			setupMock: func(*roomMocks.MockRoom, *bookingMocks.MockBooking) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown room",
			req:  dto.CalendarRequest{RoomID: roomID, WeekStart: "2025-03-10"},
			setupMock: func(room *roomMocks.MockRoom, _ *bookingMocks.MockBooking) {
				room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "booking query fails",
			req:  dto.CalendarRequest{RoomID: roomID, WeekStart: "2025-03-10"},
			setupMock: func(room *roomMocks.MockRoom, booking *bookingMocks.MockBooking) {
				room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: roomID}, nil)
				booking.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, roomRepo, bookingRepo := newService(t)
			tt.setupMock(roomRepo, bookingRepo)

			_, err := svc.GetWeek(context.Background(), tt.req)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}
