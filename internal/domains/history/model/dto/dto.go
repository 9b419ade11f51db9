package dto

import (
	"roombooker/internal/domains/booking/model"
	bookingDto "roombooker/internal/domains/booking/model/dto"
	roomDto "roombooker/internal/domains/room/model/dto"
)

type RoomHistoryResponse struct {
	Room     roomDto.RoomResponse         `json:"room"`
	Bookings []bookingDto.BookingResponse `json:"bookings"`
}

type Summary struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Cancelled int `json:"cancelled"`
}

func (s *Summary) FromCounts(counts []model.StatusCount) {
	for _, count := range counts {
		s.Total += count.Count

		switch count.Status {
		case model.StatusPending:
			s.Pending = count.Count
		case model.StatusApproved:
			s.Approved = count.Count
		case model.StatusRejected:
			s.Rejected = count.Count
		case model.StatusCancelled:
			s.Cancelled = count.Count
		}
	}
}

type RoomStat struct {
	RoomID   string `json:"room_id"`
	RoomName string `json:"room_name"`
	Count    int    `json:"count"`
}

type MonthStat struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type StatsResponse struct {
	Summary Summary     `json:"summary"`
	ByRoom  []RoomStat  `json:"by_room"`
	ByMonth []MonthStat `json:"by_month"`
}

func (r *StatsResponse) FromCounts(status []model.StatusCount, rooms []model.RoomCount, months []model.MonthCount) {
	r.Summary.FromCounts(status)

	r.ByRoom = make([]RoomStat, len(rooms))
	for i, room := range rooms {
		r.ByRoom[i] = RoomStat{RoomID: room.RoomID, RoomName: room.RoomName, Count: room.Count}
	}

	r.ByMonth = make([]MonthStat, len(months))
	for i, month := range months {
		r.ByMonth[i] = MonthStat{Month: month.Month, Count: month.Count}
	}
}
