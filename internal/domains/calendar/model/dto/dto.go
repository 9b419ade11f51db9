package dto

import (
	"roombooker/internal/domains/calendar/grid"
	"roombooker/shared/constant"
)

type CalendarRequest struct {
	RoomID    string `json:"room_id"    validate:"required,uuid"`
	WeekStart string `json:"week_start" validate:"required,isodate"`
}

type DayResponse struct {
	Date    string      `json:"date"`
	Weekday int         `json:"weekday"`
	Slots   []grid.Slot `json:"slots"`
}

type CalendarResponse struct {
	RoomID    string        `json:"room_id"`
	WeekStart string        `json:"week_start"`
	Days      []DayResponse `json:"days"`
}

func (r *CalendarResponse) FromGrid(roomID string, days []grid.Day) {
	r.RoomID = roomID
	r.Days = make([]DayResponse, len(days))

	for i, day := range days {
		r.Days[i] = DayResponse{
			Date:    day.Date.Format(constant.DateOnly),
			Weekday: int(day.Date.Weekday()),
			Slots:   day.Slots,
		}
	}

	if len(r.Days) > 0 {
		r.WeekStart = r.Days[0].Date
	}
}
