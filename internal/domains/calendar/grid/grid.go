// Package grid derives the weekly availability grid of a room.
//
// BuildWeek is pure: it reads no clock and performs no I/O, so the same room,
// bookings, week start, now and window always produce the same grid.
package grid

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusOccupied  Status = "occupied"
	StatusPending   Status = "pending"
	StatusBlocked   Status = "blocked"
)

// Booking statuses that reach the grid. Anything else is ignored.
const (
	BookingPending  = "pending"
	BookingApproved = "approved"
)

const (
	DaysInWeek    = 7
	minutesInHour = 60
	dateLayout    = time.DateOnly

	defaultOpen  = 7 * minutesInHour
	defaultClose = 20 * minutesInHour
)

// DefaultWindow scans 07:00 to 20:00 inclusive in 30 minute steps.
var DefaultWindow = Window{Open: "07:00", Close: "20:00", SlotMinutes: 30}

type Room struct {
	AvailableDays  []int
	AvailableStart string
	AvailableEnd   string
	IsBlocked      bool
}

type Booking struct {
	ID        string
	Date      time.Time
	StartTime string
	EndTime   string
	Status    string
}

type Slot struct {
	Time      string `json:"time"`
	Status    Status `json:"status"`
	BookingID string `json:"booking_id,omitempty"`
	Duration  int    `json:"duration,omitempty"`
}

type Day struct {
	Date  time.Time
	Slots []Slot
}

// Window is the range of slot start times generated for every day. Close is
// inclusive.
type Window struct {
	Open        string
	Close       string
	SlotMinutes int
}

// interval is a booking resolved to minutes of day.
type interval struct {
	id       string
	start    int
	end      int
	approved bool
}

// BuildWeek returns seven days starting at the calendar date of weekStart,
// interpreted in weekStart's location.
func BuildWeek(room Room, bookings []Booking, weekStart, now time.Time, window Window) []Day {
	open, closeAt, step := window.bounds()

	first := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())
	days := make([]Day, 0, DaysInWeek)

	for offset := range DaysInWeek {
		date := first.AddDate(0, 0, offset)

		days = append(days, Day{
			Date:  date,
			Slots: buildDay(room, bookings, date, now, open, closeAt, step),
		})
	}

	return days
}

func buildDay(room Room, bookings []Booking, date, now time.Time, open, closeAt, step int) []Slot {
	slots := make([]Slot, 0, (closeAt-open)/step+1)
	for minute := open; minute <= closeAt; minute += step {
		slots = append(slots, Slot{Time: FormatClock(minute), Status: StatusBlocked})
	}

	if room.IsBlocked || !slices.Contains(room.AvailableDays, int(date.Weekday())) {
		return slots
	}

	roomStart, okStart := ParseClock(room.AvailableStart)
	roomEnd, okEnd := ParseClock(room.AvailableEnd)

	if !okStart || !okEnd {
		return slots
	}

	covers, ok := dayIntervals(bookings, date)
	if !ok {
		return slots
	}

	for idx := range slots {
		minute := open + idx*step

		if minute < roomStart || minute >= roomEnd {
			continue
		}

		instant := time.Date(date.Year(), date.Month(), date.Day(), minute/minutesInHour, minute%minutesInHour, 0, 0, date.Location())
		if instant.Before(now) {
			continue
		}

		slots[idx].Status = StatusAvailable

		cover, found := covering(covers, minute)
		if !found {
			continue
		}

		slots[idx].BookingID = cover.id

		if cover.approved {
			slots[idx].Status = StatusOccupied
			slots[idx].Duration = roundUp(cover.end-cover.start, step)
		} else {
			slots[idx].Status = StatusPending
		}
	}

	return slots
}

// dayIntervals keeps the pending and approved bookings dated on date, ordered so
// that the first cover of any minute is the one that wins: approved before pending,
// then earliest start, then lowest id. ok is false when any of them carries an
// unreadable time.
func dayIntervals(bookings []Booking, date time.Time) (intervals []interval, ok bool) {
	day := date.Format(dateLayout)

	for _, booking := range bookings {
		if booking.Status != BookingPending && booking.Status != BookingApproved {
			continue
		}

		if booking.Date.Format(dateLayout) != day {
			continue
		}

		start, okStart := ParseClock(booking.StartTime)
		end, okEnd := ParseClock(booking.EndTime)

		if !okStart || !okEnd {
			return nil, false
		}

		intervals = append(intervals, interval{
			id:       booking.ID,
			start:    start,
			end:      end,
			approved: booking.Status == BookingApproved,
		})
	}

	slices.SortFunc(intervals, func(a, b interval) int {
		if a.approved != b.approved {
			if a.approved {
				return -1
			}

			return 1
		}

		return cmp.Or(cmp.Compare(a.start, b.start), cmp.Compare(a.id, b.id))
	})

	return intervals, true
}

func covering(intervals []interval, minute int) (interval, bool) {
	for _, candidate := range intervals {
		if candidate.start <= minute && minute < candidate.end {
			return candidate, true
		}
	}

	return interval{}, false
}

func roundUp(minutes, step int) int {
	if minutes <= 0 {
		return 0
	}

	return (minutes + step - 1) / step * step
}

// bounds resolves the window to minutes of day, falling back to DefaultWindow when
// it cannot be read.
func (w Window) bounds() (open, closeAt, step int) {
	open, okOpen := ParseClock(w.Open)
	closeAt, okClose := ParseClock(w.Close)

	if !okOpen || !okClose || w.SlotMinutes <= 0 || closeAt < open {
		return defaultOpen, defaultClose, DefaultWindow.SlotMinutes
	}

	return open, closeAt, w.SlotMinutes
}

// ParseClock reads a zero padded "HH:MM" into minutes of day.
func ParseClock(value string) (int, bool) {
	if len(value) != 5 || value[2] != ':' {
		return 0, false
	}

	digits := [4]byte{value[0], value[1], value[3], value[4]}
	for _, digit := range digits {
		if digit < '0' || digit > '9' {
			return 0, false
		}
	}

	hour := int(digits[0]-'0')*10 + int(digits[1]-'0')
	minute := int(digits[2]-'0')*10 + int(digits[3]-'0')

	if hour > 23 || minute > 59 {
		return 0, false
	}

	return hour*minutesInHour + minute, true
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/minutesInHour, minutes%minutesInHour)
}
