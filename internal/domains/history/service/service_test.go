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

	otelMocks "roombooker/infras/otel/mocks"
	auditMocks "roombooker/internal/domains/audit/mocks"
	auditModel "roombooker/internal/domains/audit/model"
	bookingMocks "roombooker/internal/domains/booking/mocks"
	"roombooker/internal/domains/booking/model"
	bookingDto "roombooker/internal/domains/booking/model/dto"
	"roombooker/internal/domains/history/service"
	roomMocks "roombooker/internal/domains/room/mocks"
	roomModel "roombooker/internal/domains/room/model"
	gDto "roombooker/shared/dto"
	"roombooker/shared/failure"
	"roombooker/shared/timezone"
)

var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type fixture struct {
	repo  *bookingMocks.MockBooking
	rooms *roomMocks.MockRoom
	audit *auditMocks.MockAuditLog
	svc   service.History
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  bookingMocks.NewMockBooking(ctrl),
		rooms: roomMocks.NewMockRoom(ctrl),
		audit: auditMocks.NewMockAuditLog(ctrl),
	}
	f.svc = service.New(f.repo, f.rooms, f.audit, timezone.FixedClock(now), otelMocks.NewOtel())

	return f
}

func sampleBooking(id string, status model.Status) model.Booking {
	return model.Booking{
		ID:        id,
		RoomID:    "room-1",
		RoomName:  "Sala VIP",
		FullName:  "Ana Souza",
		Email:     "ana@example.com",
		Date:      time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "10:00",
		Status:    status,
	}
}

func TestHistoryService_GetAll(t *testing.T) {
	params := gDto.QueryParams{Page: 2, Limit: 1}
	filter := bookingDto.BookingFilter{StartDate: "2025-03-01"}.ToFilterGroup("created_at")

	t.Run("paginated", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Count(gomock.Any(), filter).Return(3, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), params, filter).Return([]model.Booking{sampleBooking("b-2", model.StatusApproved)}, nil)

		res, err := f.svc.GetAll(context.Background(), params, filter)

		require.NoError(t, err)
		assert.Equal(t, 3, res.TotalData)
		assert.Equal(t, 3, res.TotalPage)
		require.Len(t, res.Bookings, 1)
		assert.Equal(t, "b-2", res.Bookings[0].ID)
	})

	t.Run("count failure", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("db down"))

		_, err := f.svc.GetAll(context.Background(), params, filter)

		assert.ErrorContains(t, err, "failed to count booking history")
	})
}

func TestHistoryService_GetBooking(t *testing.T) {
	t.Run("with audit trail", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleBooking("b-1", model.StatusApproved), nil)
		f.audit.EXPECT().GetByBookings(gomock.Any(), "b-1").Return(map[string][]auditModel.AuditLog{
			"b-1": {
				{ID: "a-1", BookingID: "b-1", Action: auditModel.ActionCreated, PerformedBy: "Ana Souza", PerformedAt: now},
				{ID: "a-2", BookingID: "b-1", Action: auditModel.ActionApproved, PerformedBy: "admin", PerformedAt: now},
			},
		}, nil)

		res, err := f.svc.GetBooking(context.Background(), "b-1")

		require.NoError(t, err)
		assert.Equal(t, "approved", res.Status)
		require.Len(t, res.AuditLogs, 2)
		assert.Equal(t, "approved", res.AuditLogs[1].Action)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.GetBooking(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestHistoryService_GetRoom(t *testing.T) {
	room := roomModel.Room{ID: "room-1", Name: "Sala VIP", AvailableStart: "07:00", AvailableEnd: "20:00"}

	t.Run("bookings with audit trail", func(t *testing.T) {
		f := newFixture(t)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				assert.Equal(t, model.FieldDate, params.SortBy)
				assert.Equal(t, gDto.SortDirDesc, params.SortDir)
				assert.Zero(t, params.Limit)

				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "bookings.room_id = :room_id")
				assert.Equal(t, "2025-03-01", args["start_date"])

				return []model.Booking{sampleBooking("b-2", model.StatusPending), sampleBooking("b-1", model.StatusApproved)}, nil
			})
		f.audit.EXPECT().GetByBookings(gomock.Any(), "b-2", "b-1").Return(map[string][]auditModel.AuditLog{
			"b-1": {{ID: "a-1", BookingID: "b-1", Action: auditModel.ActionCreated}},
		}, nil)

		res, err := f.svc.GetRoom(context.Background(), "room-1", bookingDto.BookingFilter{StartDate: "2025-03-01"})

		require.NoError(t, err)
		assert.Equal(t, "Sala VIP", res.Room.Name)
		require.Len(t, res.Bookings, 2)
		assert.Empty(t, res.Bookings[0].AuditLogs)
		assert.Len(t, res.Bookings[1].AuditLogs, 1)
	})

	t.Run("room without bookings skips audit lookup", func(t *testing.T) {
		f := newFixture(t)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.GetRoom(context.Background(), "room-1", bookingDto.BookingFilter{})

		require.NoError(t, err)
		assert.Empty(t, res.Bookings)
	})

	t.Run("room not found", func(t *testing.T) {
		f := newFixture(t)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)

		_, err := f.svc.GetRoom(context.Background(), "missing", bookingDto.BookingFilter{})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestHistoryService_Stats(t *testing.T) {
	t.Run("aggregates", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().CountByStatus(gomock.Any()).Return([]model.StatusCount{
			{Status: model.StatusApproved, Count: 2},
			{Status: model.StatusPending, Count: 1},
		}, nil)
		f.repo.EXPECT().CountByRoom(gomock.Any()).Return([]model.RoomCount{{RoomID: "room-1", RoomName: "Sala VIP", Count: 3}}, nil)
		f.repo.EXPECT().CountByMonth(gomock.Any(), time.Date(2024, 9, 10, 8, 0, 0, 0, time.UTC)).
			Return([]model.MonthCount{{Month: "2025-03", Count: 3}}, nil)

		res, err := f.svc.Stats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 3, res.Summary.Total)
		assert.Equal(t, 2, res.Summary.Approved)
		assert.Equal(t, "Sala VIP", res.ByRoom[0].RoomName)
		assert.Equal(t, "2025-03", res.ByMonth[0].Month)
	})

	t.Run("any query failing fails the summary", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().CountByStatus(gomock.Any()).Return(nil, nil).AnyTimes()
		f.repo.EXPECT().CountByRoom(gomock.Any()).Return(nil, errors.New("db down")).AnyTimes()
		f.repo.EXPECT().CountByMonth(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

		_, err := f.svc.Stats(context.Background())

		assert.ErrorContains(t, err, "db down")
	})
}
