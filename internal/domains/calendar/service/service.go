package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"roombooker/config"
	"roombooker/infras/otel"
	bookingModel "roombooker/internal/domains/booking/model"
	bookingRepository "roombooker/internal/domains/booking/repository"
	"roombooker/internal/domains/calendar/grid"
	"roombooker/internal/domains/calendar/model/dto"
	roomModel "roombooker/internal/domains/room/model"
	roomRepository "roombooker/internal/domains/room/repository"
	"roombooker/shared"
	"roombooker/shared/constant"
	gDto "roombooker/shared/dto"
	"roombooker/shared/failure"
	"roombooker/shared/timezone"
)

// Calendar serves the weekly availability grid of a room. Results are never
// cached since slot status depends on the current time.
type Calendar interface {
	GetWeek(ctx context.Context, req dto.CalendarRequest) (dto.CalendarResponse, error)
}

type serviceImpl struct {
	roomRepo    roomRepository.Room
	bookingRepo bookingRepository.Booking
	clock       timezone.Clock
	window      grid.Window
	otel        otel.Otel
}

func New(roomRepo roomRepository.Room, bookingRepo bookingRepository.Booking, clock timezone.Clock, cfg *config.Config, otel otel.Otel) Calendar {
	calendar := cfg.App.Calendar

	return &serviceImpl{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		clock:       clock,
		window:      grid.Window{Open: calendar.DayStart, Close: calendar.DayEnd, SlotMinutes: calendar.SlotMinutes},
		otel:        otel,
	}
}

func (s *serviceImpl) GetWeek(ctx context.Context, req dto.CalendarRequest) (res dto.CalendarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".calendar.GetWeek")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.RoomID == constant.Empty {
		return res, failure.BadRequestFromString("room_id is required")
	}

	weekStart, err := timezone.Parse(constant.DateOnly, req.WeekStart)
	if err != nil {
		return res, failure.BadRequestFromString("week_start must be a date in YYYY-MM-DD format")
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("roomID", req.RoomID).Msg("failed to get room for calendar")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found")
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{
		SortBy:  bookingModel.FieldStartTime,
		SortDir: gDto.SortDirAsc,
	}, weekFilter(room.ID, weekStart.Format(constant.DateOnly), weekStart.AddDate(0, 0, grid.DaysInWeek).Format(constant.DateOnly)))
	if err != nil {
		log.Error().Err(err).Str("roomID", req.RoomID).Msg("failed to get bookings for calendar")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	days := grid.BuildWeek(toGridRoom(room), toGridBookings(bookings), weekStart, s.clock.Now(), s.window)
	res.FromGrid(room.ID, days)

	return res, nil
}

// weekFilter selects the bookings of roomID dated in [from, to) that can still
// occupy a slot.
func weekFilter(roomID, from, to string) gDto.FilterGroup {
	return gDto.NewFilterGroup(
		gDto.Filter{Field: bookingModel.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
		gDto.Filter{ArgName: "week_from", Field: bookingModel.FieldDate, Value: from, Operator: gDto.FilterOperatorGreaterEq, Table: bookingModel.TableName},
		gDto.Filter{ArgName: "week_to", Field: bookingModel.FieldDate, Value: to, Operator: gDto.FilterOperatorLess, Table: bookingModel.TableName},
		gDto.Filter{
			Field:    bookingModel.FieldStatus,
			Value:    []string{string(bookingModel.StatusPending), string(bookingModel.StatusApproved)},
			Operator: gDto.FilterOperatorIn,
			Table:    bookingModel.TableName,
		},
	)
}

func toGridRoom(room roomModel.Room) grid.Room {
	return grid.Room{
		AvailableDays:  room.Weekdays(),
		AvailableStart: room.AvailableStart,
		AvailableEnd:   room.AvailableEnd,
		IsBlocked:      room.IsBlocked,
	}
}

func toGridBookings(bookings []bookingModel.Booking) []grid.Booking {
	res := make([]grid.Booking, len(bookings))
	for i, booking := range bookings {
		res[i] = grid.Booking{
			ID:        booking.ID,
			Date:      booking.Date,
			StartTime: booking.StartTime,
			EndTime:   booking.EndTime,
			Status:    string(booking.Status),
		}
	}

	return res
}
