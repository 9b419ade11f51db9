package dto

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	auditDto "roombooker/internal/domains/audit/model/dto"
	"roombooker/internal/domains/booking/model"
	"roombooker/shared"
	"roombooker/shared/constant"
	gDto "roombooker/shared/dto"
	"roombooker/shared/failure"
	gModel "roombooker/shared/model"
	"roombooker/shared/timezone"
)

type CreateBookingRequest struct {
	RoomID       string `json:"room_id"      validate:"required,uuid"`
	FullName     string `json:"full_name"    validate:"required,max=100"`
	Area         string `json:"area"         validate:"required,max=100"`
	Email        string `json:"email"        validate:"required,email,max=100"`
	Phone        string `json:"phone"        validate:"omitempty,max=30"`
	Reason       string `json:"reason"       validate:"required,max=500"`
	Observations string `json:"observations" validate:"omitempty,max=1000"`
	Date         string `json:"date"         validate:"required,isodate"`
	StartTime    string `json:"start_time"   validate:"required,hhmm"`
	EndTime      string `json:"end_time"     validate:"required,hhmm"`
}

// Validate checks rules that span fields.
func (c *CreateBookingRequest) Validate() error {
	if c.StartTime >= c.EndTime {
		return failure.BadRequestFromString("start_time must be before end_time")
	}

	return nil
}

// ParseDate reads Date as a calendar day. The result is midnight UTC so it maps
// one to one onto a DATE column.
func (c *CreateBookingRequest) ParseDate() (time.Time, error) {
	date, err := time.Parse(constant.DateOnly, c.Date)
	if err != nil {
		return time.Time{}, failure.BadRequestFromString("date must be a date in YYYY-MM-DD format")
	}

	return date, nil
}

// ToModel creates a pending booking with a fresh cancellation token. The requester
// is recorded as creator.
func (c *CreateBookingRequest) ToModel(date time.Time) model.Booking {
	return model.Booking{
		ID:                uuid.NewString(),
		RoomID:            c.RoomID,
		FullName:          c.FullName,
		Area:              c.Area,
		Email:             c.Email,
		Phone:             c.Phone,
		Reason:            c.Reason,
		Observations:      c.Observations,
		Date:              date,
		StartTime:         c.StartTime,
		EndTime:           c.EndTime,
		Status:            model.StatusPending,
		CancellationToken: uuid.NewString(),
		Metadata:          gModel.NewMetadata(c.FullName),
	}
}

type RejectBookingRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type UserCancelBookingRequest struct {
	CancellationToken string `json:"cancellation_token" validate:"required,uuid"`
	Reason            string `json:"reason"             validate:"omitempty,max=500"`
}

type BookingResponse struct {
	ID                 string                      `json:"id"`
	RoomID             string                      `json:"room_id"`
	RoomName           string                      `json:"room_name,omitempty"`
	FullName           string                      `json:"full_name"`
	Area               string                      `json:"area"`
	Email              string                      `json:"email"`
	Phone              string                      `json:"phone,omitempty"`
	Reason             string                      `json:"reason"`
	Observations       string                      `json:"observations,omitempty"`
	Date               string                      `json:"date"`
	StartTime          string                      `json:"start_time"`
	EndTime            string                      `json:"end_time"`
	Status             string                      `json:"status"`
	ApprovedBy         string                      `json:"approved_by,omitempty"`
	ApprovedAt         string                      `json:"approved_at,omitempty"`
	RejectedBy         string                      `json:"rejected_by,omitempty"`
	RejectedAt         string                      `json:"rejected_at,omitempty"`
	RejectionReason    string                      `json:"rejection_reason,omitempty"`
	CancelledBy        string                      `json:"cancelled_by,omitempty"`
	CancelledAt        string                      `json:"cancelled_at,omitempty"`
	CancellationReason string                      `json:"cancellation_reason,omitempty"`
	AuditLogs          []auditDto.AuditLogResponse `json:"audit_logs,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.RoomName = model.RoomName
	r.FullName = model.FullName
	r.Area = model.Area
	r.Email = model.Email
	r.Phone = model.Phone
	r.Reason = model.Reason
	r.Observations = model.Observations
	r.Date = model.Date.Format(constant.DateOnly)
	r.StartTime = model.StartTime
	r.EndTime = model.EndTime
	r.Status = string(model.Status)
	r.ApprovedBy = model.ApprovedBy
	r.ApprovedAt = formatOptional(model.ApprovedAt)
	r.RejectedBy = model.RejectedBy
	r.RejectedAt = formatOptional(model.RejectedAt)
	r.RejectionReason = model.RejectionReason
	r.CancelledBy = model.CancelledBy
	r.CancelledAt = formatOptional(model.CancelledAt)
	r.CancellationReason = model.CancellationReason
	r.Metadata.FromModel(model.Metadata)
}

// CreateBookingResponse is the only response that carries the cancellation token.
type CreateBookingResponse struct {
	BookingResponse
	CancellationToken string `json:"cancellation_token"`
}

func (r *CreateBookingResponse) FromModel(model model.Booking) {
	r.BookingResponse.FromModel(model)
	r.CancellationToken = model.CancellationToken
}

type GetBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	gDto.Pagination
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData int, params gDto.QueryParams) {
	r.Page = params.Page
	r.Limit = params.Limit
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, params.Limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingFilter holds the optional list filters. Dates are inclusive days.
type BookingFilter struct {
	RoomID    string `validate:"omitempty,uuid"`
	Status    string `validate:"omitempty,oneof=pending approved rejected cancelled"`
	StartDate string `validate:"omitempty,isodate"`
	EndDate   string `validate:"omitempty,isodate"`
}

func (f *BookingFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	f.RoomID = query.Get(constant.RequestParamRoomID)
	f.Status = query.Get(model.FieldStatus)
	f.StartDate = query.Get(constant.RequestParamStartDate)
	f.EndDate = query.Get(constant.RequestParamEndDate)
}

// ToFilterGroup renders the filter with the date range applied to dateField.
func (f BookingFilter) ToFilterGroup(dateField string) gDto.FilterGroup {
	group := gDto.NewFilterGroup()

	if f.RoomID != "" {
		group.Add(gDto.Filter{Field: model.FieldRoomID, Value: f.RoomID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.Status != "" {
		group.Add(gDto.Filter{Field: model.FieldStatus, Value: f.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if _, err := time.Parse(constant.DateOnly, f.StartDate); err == nil {
		group.Add(gDto.Filter{ArgName: "start_date", Field: dateField, Value: f.StartDate, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	}

	// the end day is inclusive, so compare against the following midnight
	if end, err := time.Parse(constant.DateOnly, f.EndDate); err == nil {
		next := end.AddDate(0, 0, 1).Format(constant.DateOnly)
		group.Add(gDto.Filter{ArgName: "end_date", Field: dateField, Value: next, Operator: gDto.FilterOperatorLess, Table: model.TableName})
	}

	return group
}

// VerifyTokenResponse tells a requester which booking a cancellation link points at.
type VerifyTokenResponse struct {
	ID        string `json:"id"`
	RoomName  string `json:"room_name"`
	FullName  string `json:"full_name"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
	CanCancel bool   `json:"can_cancel"`
}

func (r *VerifyTokenResponse) FromModel(booking model.Booking) {
	r.ID = booking.ID
	r.RoomName = booking.RoomName
	r.FullName = booking.FullName
	r.Date = booking.Date.Format(constant.DateOnly)
	r.StartTime = booking.StartTime
	r.EndTime = booking.EndTime
	r.Status = string(booking.Status)
	r.CanCancel = booking.Status.CanTransition(model.StatusCancelled)
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return constant.Empty
	}

	return timezone.Format(*t, constant.DateFormat)
}
