package model

import (
	"fmt"
	"slices"
	"time"

	roomModel "roombooker/internal/domains/room/model"
	"roombooker/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                 = "id"
	FieldRoomID             = "room_id"
	FieldEmail              = "email"
	FieldDate               = "date"
	FieldStartTime          = "start_time"
	FieldEndTime            = "end_time"
	FieldStatus             = "status"
	FieldCancellationToken  = "cancellation_token"
	FieldApprovedBy         = "approved_by"
	FieldApprovedAt         = "approved_at"
	FieldRejectedBy         = "rejected_by"
	FieldRejectedAt         = "rejected_at"
	FieldRejectionReason    = "rejection_reason"
	FieldCancelledBy        = "cancelled_by"
	FieldCancelledAt        = "cancelled_at"
	FieldCancellationReason = "cancellation_reason"
)

// SortableFields are the columns a booking listing may be ordered by.
var SortableFields = []string{FieldDate, FieldStartTime, FieldStatus, "created_at"}

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusCancelled},
}

// CanTransition reports whether a booking in status s may move to next.
func (s Status) CanTransition(next Status) bool {
	return slices.Contains(transitions[s], next)
}

type Booking struct {
	ID                 string     `db:"id"`
	RoomID             string     `db:"room_id"`
	RoomName           string     `db:"room_name"           column:"name" table:"rooms"`
	FullName           string     `db:"full_name"`
	Area               string     `db:"area"`
	Email              string     `db:"email"`
	Phone              string     `db:"phone"`
	Reason             string     `db:"reason"`
	Observations       string     `db:"observations"`
	Date               time.Time  `db:"date"`
	StartTime          string     `db:"start_time"`
	EndTime            string     `db:"end_time"`
	Status             Status     `db:"status"`
	CancellationToken  string     `db:"cancellation_token"`
	ApprovedBy         string     `db:"approved_by"`
	ApprovedAt         *time.Time `db:"approved_at"`
	RejectedBy         string     `db:"rejected_by"`
	RejectedAt         *time.Time `db:"rejected_at"`
	RejectionReason    string     `db:"rejection_reason"`
	CancelledBy        string     `db:"cancelled_by"`
	CancelledAt        *time.Time `db:"cancelled_at"`
	CancellationReason string     `db:"cancellation_reason"`
	model.Metadata
}

// GetJoinQuery pulls the room name into every select.
func (Booking) GetJoinQuery() string {
	return fmt.Sprintf("LEFT JOIN %[1]s ON %[1]s.%[2]s = %[3]s.%[4]s", roomModel.TableName, roomModel.FieldID, TableName, FieldRoomID)
}

type StatusCount struct {
	Status Status `db:"status"`
	Count  int    `db:"count"`
}

type RoomCount struct {
	RoomID   string `db:"room_id"`
	RoomName string `db:"room_name"`
	Count    int    `db:"count"`
}

type MonthCount struct {
	Month string `db:"month"`
	Count int    `db:"count"`
}
