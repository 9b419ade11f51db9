package model

import (
	"github.com/lib/pq"

	"roombooker/shared/constant"
	"roombooker/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID             = "id"
	FieldName           = "name"
	FieldCapacity       = "capacity"
	FieldLocation       = "location"
	FieldEquipment      = "equipment"
	FieldImageURL       = "image_url"
	FieldAvailableDays  = "available_days"
	FieldAvailableStart = "available_start"
	FieldAvailableEnd   = "available_end"
	FieldIsBlocked      = "is_blocked"
	FieldBlockReason    = "block_reason"
)

// SortableFields are the columns a room listing may be ordered by.
var SortableFields = []string{FieldName, FieldCapacity, FieldLocation, constant.FieldCreatedAt}

type Room struct {
	ID             string         `db:"id"`
	Name           string         `db:"name"`
	Capacity       int            `db:"capacity"`
	Location       string         `db:"location"`
	Equipment      pq.StringArray `db:"equipment"`
	ImageURL       string         `db:"image_url"`
	Observations   string         `db:"observations"`
	AvailableDays  pq.Int64Array  `db:"available_days"`
	AvailableStart string         `db:"available_start"`
	AvailableEnd   string         `db:"available_end"`
	IsBlocked      bool           `db:"is_blocked"`
	BlockReason    string         `db:"block_reason"`
	model.Metadata
}

// Weekdays returns AvailableDays as plain ints, 0 being Sunday.
func (r Room) Weekdays() []int {
	days := make([]int, len(r.AvailableDays))
	for i, day := range r.AvailableDays {
		days[i] = int(day)
	}

	return days
}
