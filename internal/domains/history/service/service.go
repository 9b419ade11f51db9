package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"roombooker/infras/otel"
	auditModel "roombooker/internal/domains/audit/model"
	auditDto "roombooker/internal/domains/audit/model/dto"
	auditRepository "roombooker/internal/domains/audit/repository"
	"roombooker/internal/domains/booking/model"
	bookingDto "roombooker/internal/domains/booking/model/dto"
	"roombooker/internal/domains/booking/repository"
	"roombooker/internal/domains/history/model/dto"
	roomModel "roombooker/internal/domains/room/model"
	roomRepository "roombooker/internal/domains/room/repository"
	"roombooker/shared"
	"roombooker/shared/constant"
	gDto "roombooker/shared/dto"
	"roombooker/shared/failure"
	"roombooker/shared/timezone"
)

// statsMonths is how far back the per-month breakdown reaches.
const statsMonths = 6

type History interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (bookingDto.GetBookingsResponse, error)
	GetBooking(ctx context.Context, id string) (bookingDto.BookingResponse, error)
	GetRoom(ctx context.Context, roomID string, filter bookingDto.BookingFilter) (dto.RoomHistoryResponse, error)
	Stats(ctx context.Context) (dto.StatsResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	roomRepo  roomRepository.Room
	auditRepo auditRepository.AuditLog
	clock     timezone.Clock
	otel      otel.Otel
}

func New(repo repository.Booking, roomRepo roomRepository.Room, auditRepo auditRepository.AuditLog, clock timezone.Clock, otel otel.Otel) History {
	return &serviceImpl{
		repo:      repo,
		roomRepo:  roomRepo,
		auditRepo: auditRepo,
		clock:     clock,
		otel:      otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res bookingDto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".history.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count booking history")

		return res, fmt.Errorf("failed to count booking history: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking history")

		return res, fmt.Errorf("failed to get booking history: %w", err)
	}

	res.FromModels(models, total, req)

	return res, nil
}

func (s *serviceImpl) GetBooking(ctx context.Context, id string) (res bookingDto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".history.GetBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found")
	}

	logs, err := s.auditRepo.GetByBookings(ctx, booking.ID)
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to get audit logs")

		return res, fmt.Errorf("failed to get audit logs: %w", err)
	}

	res.FromModel(booking)
	res.AuditLogs = auditDto.FromModels(logs[booking.ID])

	return res, nil
}

// GetRoom lists every booking of a room, newest date first, each with its audit trail.
// The date range in filter applies to the booked date.
func (s *serviceImpl) GetRoom(ctx context.Context, roomID string, filter bookingDto.BookingFilter) (res dto.RoomHistoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".history.GetRoom")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("roomID", roomID).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found")
	}

	filter.RoomID = room.ID
	params := gDto.QueryParams{SortBy: model.FieldDate, SortDir: gDto.SortDirDesc}

	bookings, err := s.repo.GetAll(ctx, params, filter.ToFilterGroup(model.FieldDate))
	if err != nil {
		log.Error().Err(err).Str("roomID", roomID).Msg("failed to get room bookings")

		return res, fmt.Errorf("failed to get room bookings: %w", err)
	}

	ids := make([]string, len(bookings))
	for i, booking := range bookings {
		ids[i] = booking.ID
	}

	var logs map[string][]auditModel.AuditLog
	if len(ids) > 0 {
		if logs, err = s.auditRepo.GetByBookings(ctx, ids...); err != nil {
			log.Error().Err(err).Str("roomID", roomID).Msg("failed to get audit logs")

			return res, fmt.Errorf("failed to get audit logs: %w", err)
		}
	}

	res.Room.FromModel(room)

	res.Bookings = make([]bookingDto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		res.Bookings[i].FromModel(booking)
		res.Bookings[i].AuditLogs = auditDto.FromModels(logs[booking.ID])
	}

	return res, nil
}

// Stats runs the three aggregate queries concurrently.
func (s *serviceImpl) Stats(ctx context.Context) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".history.Stats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var (
		byStatus []model.StatusCount
		byRoom   []model.RoomCount
		byMonth  []model.MonthCount
	)

	since := s.clock.Now().AddDate(0, -statsMonths, 0)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		byStatus, err = s.repo.CountByStatus(gctx)

		return err
	})

	group.Go(func() (err error) {
		byRoom, err = s.repo.CountByRoom(gctx)

		return err
	})

	group.Go(func() (err error) {
		byMonth, err = s.repo.CountByMonth(gctx, since)

		return err
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to compute booking stats")

		return res, fmt.Errorf("failed to compute booking stats: %w", err)
	}

	res.FromCounts(byStatus, byRoom, byMonth)

	return res, nil
}
