package calendar

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"roombooker/infras/otel"
	"roombooker/internal/domains/calendar/model/dto"
	"roombooker/internal/domains/calendar/service"
	"roombooker/shared/constant"
	"roombooker/shared/validator"
	"roombooker/transport/http/response"
)

type Handler struct {
	service service.Calendar
	otel    otel.Otel
}

func New(service service.Calendar, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/calendar", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetWeek)
	})
}

// GetWeek returns the availability grid of a room for one week.
// @Summary Get the weekly availability of a room
// @Description Build the slot grid of a room for the seven days starting at week_start. Each slot is available, occupied, pending or blocked.
// @Tags Calendar
// @Accept json
// @Produce json
// @Param room_id query string true "Room ID"
// @Param week_start query string true "First day of the week (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.CalendarResponse] "Weekly grid"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/calendar [get]
func (handler *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetWeek")
	defer scope.End()

	query := r.URL.Query()
	req := dto.CalendarRequest{
		RoomID:    query.Get(constant.RequestParamRoomID),
		WeekStart: query.Get(constant.RequestParamWeekStart),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		response.WithError(w, err)

		return
	}

	calendar, err := handler.service.GetWeek(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("roomID", req.RoomID).Msg("failed to get weekly calendar")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, calendar)
}
