package dto

import (
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"roombooker/internal/domains/audit/model"
	"roombooker/shared/constant"
	"roombooker/shared/timezone"
)

// Details is the free-form payload stored next to an audit entry.
type Details map[string]any

type AuditLogResponse struct {
	ID          string          `json:"id"`
	BookingID   string          `json:"booking_id"`
	Action      string          `json:"action"`
	PerformedBy string          `json:"performed_by"`
	PerformedAt string          `json:"performed_at"`
	Details     json.RawMessage `json:"details,omitempty" swaggertype:"object"`
}

func (r *AuditLogResponse) FromModel(model model.AuditLog) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.Action = string(model.Action)
	r.PerformedBy = model.PerformedBy
	r.PerformedAt = timezone.Format(model.PerformedAt, constant.DateFormat)

	if len(model.Details) > 0 {
		r.Details = json.RawMessage(model.Details)
	}
}

func FromModels(models []model.AuditLog) []AuditLogResponse {
	res := make([]AuditLogResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

// NewEntry builds an audit row stamped with the current time. Empty details are
// stored as an empty object.
func NewEntry(bookingID string, action model.Action, performedBy string, details Details) (model.AuditLog, error) {
	if details == nil {
		details = Details{}
	}

	payload, err := json.Marshal(details)
	if err != nil {
		return model.AuditLog{}, err
	}

	return model.AuditLog{
		ID:          uuid.NewString(),
		BookingID:   bookingID,
		Action:      action,
		PerformedBy: performedBy,
		PerformedAt: timezone.Now(),
		Details:     payload,
	}, nil
}
