package model

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

const (
	TableName  = "audit_logs"
	EntityName = "audit_log"

	FieldID          = "id"
	FieldBookingID   = "booking_id"
	FieldAction      = "action"
	FieldPerformedBy = "performed_by"
	FieldPerformedAt = "performed_at"
)

type Action string

const (
	ActionCreated   Action = "created"
	ActionApproved  Action = "approved"
	ActionRejected  Action = "rejected"
	ActionCancelled Action = "cancelled"
)

// AuditLog records one lifecycle change of a booking. Rows are never updated.
type AuditLog struct {
	ID          string         `db:"id"`
	BookingID   string         `db:"booking_id"`
	Action      Action         `db:"action"`
	PerformedBy string         `db:"performed_by"`
	PerformedAt time.Time      `db:"performed_at"`
	Details     types.JSONText `db:"details"`
}
