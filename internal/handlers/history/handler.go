package history

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"roombooker/infras/otel"
	"roombooker/internal/domains/booking/model"
	bookingDto "roombooker/internal/domains/booking/model/dto"
	"roombooker/internal/domains/history/model/dto"
	"roombooker/internal/domains/history/service"
	"roombooker/shared/constant"
	gDto "roombooker/shared/dto"
	"roombooker/shared/validator"
	"roombooker/transport/http/response"
)

type Handler struct {
	service service.History
	otel    otel.Otel
}

func New(service service.History, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/history", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetHistory)
		routerGroup.Get("/stats/summary", handler.GetStats)
		routerGroup.Get("/rooms/{room_id}", handler.GetRoomHistory)
		routerGroup.Get("/{booking_id}", handler.GetBookingHistory)
	})
}

// GetHistory lists bookings filtered by the time they were requested.
// @Summary Get booking history
// @Description List bookings with their audit trail. The date range applies to when the booking was requested.
// @Tags History
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_id query string false "Filter by room"
// @Param status query string false "Filter by status" Enums(pending, approved, rejected, cancelled)
// @Param start_date query string false "Requested on or after (YYYY-MM-DD)"
// @Param end_date query string false "Requested on or before (YYYY-MM-DD)"
// @Success 200 {object} response.Data[bookingDto.GetBookingsResponse] "Booking history"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/history [get]
// @Security BearerAuth
func (handler *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHistory")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.Sortable(constant.FieldCreatedAt, model.SortableFields...)

	filter := bookingDto.BookingFilter{}
	filter.FromRequest(r)

	if err := validator.ValidateStruct(&filter); err != nil {
		response.WithError(w, err)

		return
	}

	history, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup(constant.FieldCreatedAt))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking history")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, history)
}

// GetBookingHistory returns one booking with its full audit trail.
// @Summary Get the history of a booking
// @Tags History
// @Produce json
// @Param booking_id path string true "Booking ID"
// @Success 200 {object} response.Data[bookingDto.BookingResponse] "Booking with audit trail"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/history/{booking_id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingHistory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingHistory")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamBookingID)
	if err := validator.ValidateID(id, "booking"); err != nil {
		response.WithError(w, err)

		return
	}

	booking, err := handler.service.GetBooking(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("bookingID", id).Msg("failed to get booking history")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// GetRoomHistory returns every booking of a room, newest first.
// @Summary Get the history of a room
// @Tags History
// @Produce json
// @Param room_id path string true "Room ID"
// @Param start_date query string false "Booked on or after (YYYY-MM-DD)"
// @Param end_date query string false "Booked on or before (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.RoomHistoryResponse] "Room with its bookings"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/history/rooms/{room_id} [get]
// @Security BearerAuth
func (handler *Handler) GetRoomHistory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomHistory")
	defer scope.End()

	roomID := chi.URLParam(r, constant.RequestParamRoomID)
	if err := validator.ValidateID(roomID, "room"); err != nil {
		response.WithError(w, err)

		return
	}

	query := r.URL.Query()
	filter := bookingDto.BookingFilter{
		StartDate: query.Get(constant.RequestParamStartDate),
		EndDate:   query.Get(constant.RequestParamEndDate),
	}

	if err := validator.ValidateStruct(&filter); err != nil {
		response.WithError(w, err)

		return
	}

	var (
		history dto.RoomHistoryResponse
		err     error
	)

	if history, err = handler.service.GetRoom(ctx, roomID, filter); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("roomID", roomID).Msg("failed to get room history")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, history)
}

// GetStats returns booking counts by status, by room and by month.
// @Summary Get booking statistics
// @Tags History
// @Produce json
// @Success 200 {object} response.Data[dto.StatsResponse] "Booking statistics"
// @Failure 500 {object} response.Error
// @Router /v1/history/stats/summary [get]
// @Security BearerAuth
func (handler *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStats")
	defer scope.End()

	stats, err := handler.service.Stats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, stats)
}
