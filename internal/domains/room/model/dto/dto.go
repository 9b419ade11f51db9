package dto

import (
	"github.com/google/uuid"
	"github.com/lib/pq"

	"roombooker/internal/domains/room/model"
	"roombooker/shared"
	gDto "roombooker/shared/dto"
	"roombooker/shared/failure"
	gModel "roombooker/shared/model"
)

type CreateRoomRequest struct {
	Name           string   `json:"name"            validate:"required,max=100"`
	Capacity       int      `json:"capacity"        validate:"required,min=1,max=1000"`
	Location       string   `json:"location"        validate:"omitempty,max=200"`
	Equipment      []string `json:"equipment"       validate:"omitempty,max=50,dive,required,max=100"`
	ImageURL       string   `json:"image_url"       validate:"omitempty,url,max=500"`
	Observations   string   `json:"observations"    validate:"omitempty,max=1000"`
	AvailableDays  []int    `json:"available_days"  validate:"required,min=1,max=7,unique,dive,min=0,max=6"`
	AvailableStart string   `json:"available_start" validate:"required,hhmm"`
	AvailableEnd   string   `json:"available_end"   validate:"required,hhmm"`
}

// Validate checks rules that span fields.
func (c *CreateRoomRequest) Validate() error {
	return validateHours(c.AvailableStart, c.AvailableEnd)
}

func (c *CreateRoomRequest) ToModel(actor string) model.Room {
	return model.Room{
		ID:             uuid.NewString(),
		Name:           c.Name,
		Capacity:       c.Capacity,
		Location:       c.Location,
		Equipment:      toStringArray(c.Equipment),
		ImageURL:       c.ImageURL,
		Observations:   c.Observations,
		AvailableDays:  toInt64Array(c.AvailableDays),
		AvailableStart: c.AvailableStart,
		AvailableEnd:   c.AvailableEnd,
		Metadata:       gModel.NewMetadata(actor),
	}
}

// UpdateRoomRequest is a partial update; nil fields are left untouched.
type UpdateRoomRequest struct {
	Name           *string   `db:"name"            json:"name"            validate:"omitempty,min=1,max=100"`
	Capacity       *int      `db:"capacity"        json:"capacity"        validate:"omitempty,min=1,max=1000"`
	Location       *string   `db:"location"        json:"location"        validate:"omitempty,max=200"`
	Equipment      *[]string `db:"-"               json:"equipment"       validate:"omitempty,max=50,dive,required,max=100"`
	ImageURL       *string   `db:"image_url"       json:"image_url"       validate:"omitempty,max=500"`
	Observations   *string   `db:"observations"    json:"observations"    validate:"omitempty,max=1000"`
	AvailableDays  *[]int    `db:"-"               json:"available_days"  validate:"omitempty,min=1,max=7,unique,dive,min=0,max=6"`
	AvailableStart *string   `db:"available_start" json:"available_start" validate:"omitempty,hhmm"`
	AvailableEnd   *string   `db:"available_end"   json:"available_end"   validate:"omitempty,hhmm"`
}

func (u *UpdateRoomRequest) IsEmpty() bool {
	return *u == UpdateRoomRequest{}
}

// Validate checks the resulting opening hours against the stored room.
func (u *UpdateRoomRequest) Validate(current model.Room) error {
	start, end := current.AvailableStart, current.AvailableEnd

	if u.AvailableStart != nil {
		start = *u.AvailableStart
	}

	if u.AvailableEnd != nil {
		end = *u.AvailableEnd
	}

	return validateHours(start, end)
}

// Fields renders the update as a column map stamped with actor.
func (u *UpdateRoomRequest) Fields(actor string) map[string]any {
	fields := shared.TransformFields(*u, actor)

	if u.Equipment != nil {
		fields[model.FieldEquipment] = toStringArray(*u.Equipment)
	}

	if u.AvailableDays != nil {
		fields[model.FieldAvailableDays] = toInt64Array(*u.AvailableDays)
	}

	return fields
}

type BlockRoomRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type RoomResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Capacity       int      `json:"capacity"`
	Location       string   `json:"location"`
	Equipment      []string `json:"equipment"`
	ImageURL       string   `json:"image_url"`
	Observations   string   `json:"observations"`
	AvailableDays  []int    `json:"available_days"`
	AvailableStart string   `json:"available_start"`
	AvailableEnd   string   `json:"available_end"`
	IsBlocked      bool     `json:"is_blocked"`
	BlockReason    string   `json:"block_reason,omitempty"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Capacity = model.Capacity
	r.Location = model.Location
	r.Equipment = append([]string{}, model.Equipment...)
	r.ImageURL = model.ImageURL
	r.Observations = model.Observations
	r.AvailableDays = model.Weekdays()
	r.AvailableStart = model.AvailableStart
	r.AvailableEnd = model.AvailableEnd
	r.IsBlocked = model.IsBlocked
	r.BlockReason = model.BlockReason
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms []RoomResponse `json:"rooms"`
	gDto.Pagination
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData int, params gDto.QueryParams) {
	r.Page = params.Page
	r.Limit = params.Limit
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, params.Limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

// RoomFilter holds the optional list filters.
type RoomFilter struct {
	Name      string
	Location  string
	IsBlocked *bool
}

func (f RoomFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.NewFilterGroup()

	if f.Name != "" {
		group.Add(gDto.Filter{Field: model.FieldName, Value: f.Name, Operator: gDto.FilterOperatorLike, Table: model.TableName})
	}

	if f.Location != "" {
		group.Add(gDto.Filter{Field: model.FieldLocation, Value: f.Location, Operator: gDto.FilterOperatorLike, Table: model.TableName})
	}

	if f.IsBlocked != nil {
		group.Add(gDto.Filter{Field: model.FieldIsBlocked, Value: *f.IsBlocked, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	return group
}

func validateHours(start, end string) error {
	// both are zero padded HH:MM, so string order is time order
	if start >= end {
		return failure.BadRequestFromString("available_start must be before available_end")
	}

	return nil
}

func toStringArray(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}

	return pq.StringArray(values)
}

func toInt64Array(values []int) pq.Int64Array {
	days := make(pq.Int64Array, len(values))
	for i, value := range values {
		days[i] = int64(value)
	}

	return days
}
