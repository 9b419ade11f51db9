package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"roombooker/config"
	"roombooker/infras/otel"
	"roombooker/infras/postgres"
	auditModel "roombooker/internal/domains/audit/model"
	auditDto "roombooker/internal/domains/audit/model/dto"
	auditRepository "roombooker/internal/domains/audit/repository"
	"roombooker/internal/domains/booking/event"
	"roombooker/internal/domains/booking/model"
	"roombooker/internal/domains/booking/model/dto"
	"roombooker/internal/domains/booking/repository"
	"roombooker/internal/domains/calendar/grid"
	roomModel "roombooker/internal/domains/room/model"
	roomRepository "roombooker/internal/domains/room/repository"
	"roombooker/shared"
	"roombooker/shared/cache"
	"roombooker/shared/constant"
	gDto "roombooker/shared/dto"
	"roombooker/shared/failure"
	gRepo "roombooker/shared/repository"
	"roombooker/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

const (
	msgBookingNotFound = "booking not found"
	msgInvalidToken    = "invalid cancellation token"
	msgUserCancelled   = "User cancellation"
)

// argCurrentStatus names the status guard so it does not clash with the SET value.
const argCurrentStatus = "current_status"

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Approve(ctx context.Context, id string) (dto.BookingResponse, error)
	Reject(ctx context.Context, req dto.RejectBookingRequest, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, req dto.CancelBookingRequest, id string) (dto.BookingResponse, error)
	CancelByUser(ctx context.Context, req dto.UserCancelBookingRequest, id string) (dto.BookingResponse, error)
	VerifyToken(ctx context.Context, token string) (dto.VerifyTokenResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	roomRepo  roomRepository.Room
	auditRepo auditRepository.AuditLog
	tx        postgres.Transactor
	publisher event.Publisher
	clock     timezone.Clock
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepository.Room,
	auditRepo auditRepository.AuditLog,
	tx postgres.Transactor,
	publisher event.Publisher,
	clock timezone.Clock,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:      repo,
		roomRepo:  roomRepo,
		auditRepo: auditRepo,
		tx:        tx,
		publisher: publisher,
		clock:     clock,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// change is one lifecycle step: the status to move to, the columns it stamps and
// the audit entry and event it produces.
type change struct {
	next    model.Status
	action  auditModel.Action
	event   event.Type
	actor   string
	reason  string
	fields  map[string]any
	details auditDto.Details
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = req.Validate(); err != nil {
		return res, err
	}

	date, err := req.ParseDate()
	if err != nil {
		return res, err
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("roomID", req.RoomID).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found")
	}

	if err = s.checkSchedule(room, req, date); err != nil {
		return res, err
	}

	booking := req.ToModel(date)
	booking.RoomName = room.Name

	entry, err := auditDto.NewEntry(booking.ID, auditModel.ActionCreated, booking.FullName, auditDto.Details{
		"email": booking.Email,
		"area":  booking.Area,
	})
	if err != nil {
		return res, fmt.Errorf("failed to build audit entry: %w", err)
	}

	err = s.tx.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return err
		}

		return s.auditRepo.InsertTx(ctx, tx, entry)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.invalidateLists(ctx)

	created := event.New(event.TypeCreated, booking, booking.FullName, constant.Empty)
	created.CancellationToken = booking.CancellationToken
	s.publisher.Publish(ctx, created)

	res.FromModel(booking)

	return res, nil
}

// checkSchedule rejects requests for a blocked room, a closed weekday, times
// outside room hours or a start that already passed.
func (s *serviceImpl) checkSchedule(room roomModel.Room, req dto.CreateBookingRequest, date time.Time) error {
	if room.IsBlocked {
		return failure.Conflict("room is blocked")
	}

	if !slices.Contains(room.Weekdays(), int(date.Weekday())) {
		return failure.BadRequestFromString(fmt.Sprintf("room is not available on %s", date.Weekday()))
	}

	if req.StartTime < room.AvailableStart || req.EndTime > room.AvailableEnd {
		return failure.BadRequestFromString(fmt.Sprintf("booking must be within room hours %s-%s", room.AvailableStart, room.AvailableEnd))
	}

	minutes, _ := grid.ParseClock(req.StartTime)
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, minutes, 0, 0, timezone.GetLocation())

	if start.Before(s.clock.Now()) {
		return failure.BadRequestFromString("booking must start in the future")
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	booking, err := s.find(ctx, shared.FilterByID(id, model.FieldID, model.TableName), msgBookingNotFound)
	if err != nil {
		return res, err
	}

	logs, err := s.auditRepo.GetByBookings(ctx, booking.ID)
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to get audit logs")

		return res, fmt.Errorf("failed to get audit logs: %w", err)
	}

	res.FromModel(booking)
	res.AuditLogs = auditDto.FromModels(logs[booking.ID])

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Approve(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Approve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, shared.FilterByID(id, model.FieldID, model.TableName), msgBookingNotFound)
	if err != nil {
		return res, err
	}

	actor := adminFrom(ctx)

	booking, err = s.transition(ctx, booking, change{
		next:    model.StatusApproved,
		action:  auditModel.ActionApproved,
		event:   event.TypeApproved,
		actor:   actor,
		fields:  map[string]any{model.FieldApprovedBy: actor, model.FieldApprovedAt: s.clock.Now()},
		details: auditDto.Details{"email": booking.Email},
	})
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Reject(ctx context.Context, req dto.RejectBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Reject")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, shared.FilterByID(id, model.FieldID, model.TableName), msgBookingNotFound)
	if err != nil {
		return res, err
	}

	actor := adminFrom(ctx)

	booking, err = s.transition(ctx, booking, change{
		next:   model.StatusRejected,
		action: auditModel.ActionRejected,
		event:  event.TypeRejected,
		actor:  actor,
		reason: req.Reason,
		fields: map[string]any{
			model.FieldRejectedBy:      actor,
			model.FieldRejectedAt:      s.clock.Now(),
			model.FieldRejectionReason: req.Reason,
		},
		details: auditDto.Details{"email": booking.Email, "reason": req.Reason},
	})
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, req dto.CancelBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, shared.FilterByID(id, model.FieldID, model.TableName), msgBookingNotFound)
	if err != nil {
		return res, err
	}

	booking, err = s.transition(ctx, booking, s.cancellation(adminFrom(ctx), req.Reason, booking.Email))
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) CancelByUser(ctx context.Context, req dto.UserCancelBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CancelByUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	filter.Add(gDto.Filter{Field: model.FieldCancellationToken, Value: req.CancellationToken, Operator: gDto.FilterOperatorEq, Table: model.TableName})

	booking, err := s.find(ctx, filter, msgInvalidToken)
	if err != nil {
		return res, err
	}

	reason := req.Reason
	if reason == constant.Empty {
		reason = msgUserCancelled
	}

	booking, err = s.transition(ctx, booking, s.cancellation(booking.FullName, reason, booking.Email))
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) VerifyToken(ctx context.Context, token string) (res dto.VerifyTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.VerifyToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.NewFilterGroup(gDto.Filter{Field: model.FieldCancellationToken, Value: token, Operator: gDto.FilterOperatorEq, Table: model.TableName})

	booking, err := s.find(ctx, filter, msgInvalidToken)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) cancellation(actor, reason, email string) change {
	details := auditDto.Details{"email": email}
	if reason != constant.Empty {
		details["reason"] = reason
	}

	return change{
		next:   model.StatusCancelled,
		action: auditModel.ActionCancelled,
		event:  event.TypeCancelled,
		actor:  actor,
		reason: reason,
		fields: map[string]any{
			model.FieldCancelledBy:        actor,
			model.FieldCancelledAt:        s.clock.Now(),
			model.FieldCancellationReason: reason,
		},
		details: details,
	}
}

// transition applies c to booking together with its audit row in one transaction,
// then reloads the booking. The update only matches while the stored status is still
// the one that was read. Moves the state machine does not allow are conflicts.
func (s *serviceImpl) transition(ctx context.Context, booking model.Booking, c change) (model.Booking, error) {
	if !booking.Status.CanTransition(c.next) {
		return booking, failure.Conflict(fmt.Sprintf("booking is %s and cannot be %s", booking.Status, c.action))
	}

	fields := shared.TransformFields(struct{}{}, c.actor)
	maps.Copy(fields, c.fields)
	fields[model.FieldStatus] = c.next

	entry, err := auditDto.NewEntry(booking.ID, c.action, c.actor, c.details)
	if err != nil {
		return booking, fmt.Errorf("failed to build audit entry: %w", err)
	}

	filter := shared.FilterByID(booking.ID, model.FieldID, model.TableName)

	guarded := shared.FilterByID(booking.ID, model.FieldID, model.TableName)
	guarded.Add(gDto.Filter{
		ArgName:  argCurrentStatus,
		Field:    model.FieldStatus,
		Operator: gDto.FilterOperatorEq,
		Value:    booking.Status,
		Table:    model.TableName,
	})

	err = s.tx.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.UpdateTx(ctx, tx, fields, guarded); err != nil {
			return err
		}

		return s.auditRepo.InsertTx(ctx, tx, entry)
	})
	if errors.Is(err, gRepo.ErrNoRowsAffected) {
		log.Warn().Str("bookingID", booking.ID).Str("action", string(c.action)).Msg("booking status changed concurrently")

		return booking, failure.Conflict(fmt.Sprintf("booking is no longer %s", booking.Status))
	}

	if err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Str("action", string(c.action)).Msg("failed to update booking status")

		return booking, fmt.Errorf("failed to %s booking: %w", c.action, err)
	}

	s.invalidate(ctx, booking.ID)

	updated, err := s.find(ctx, filter, msgBookingNotFound)
	if err != nil {
		return booking, err
	}

	s.publisher.Publish(ctx, event.New(c.event, updated, c.actor, c.reason))

	return updated, nil
}

func (s *serviceImpl) find(ctx context.Context, filter gDto.FilterGroup, notFound string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(notFound) //nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}
	}()

	s.invalidateLists(ctx)
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func adminFrom(ctx context.Context) string {
	username, _ := ctx.Value(constant.ContextKeyAdminUsername).(string)

	return username
}
