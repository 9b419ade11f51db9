package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roombooker/internal/domains/audit/model"
	"roombooker/internal/domains/audit/model/dto"
)

func TestNewEntry(t *testing.T) {
	entry, err := dto.NewEntry("b-1", model.ActionRejected, "admin", dto.Details{"reason": "overlap"})
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "b-1", entry.BookingID)
	assert.Equal(t, model.ActionRejected, entry.Action)
	assert.False(t, entry.PerformedAt.IsZero())
	assert.JSONEq(t, `{"reason":"overlap"}`, entry.Details.String())

	empty, err := dto.NewEntry("b-1", model.ActionApproved, "admin", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, empty.Details.String())
}

func TestAuditLogResponse_FromModel(t *testing.T) {
	entry, err := dto.NewEntry("b-1", model.ActionCreated, "Ana", dto.Details{"email": "ana@example.com"})
	require.NoError(t, err)

	res := dto.FromModels([]model.AuditLog{entry, {ID: "x", Action: model.ActionCancelled}})

	require.Len(t, res, 2)
	assert.Equal(t, "created", res[0].Action)
	assert.Equal(t, "Ana", res[0].PerformedBy)
	assert.JSONEq(t, `{"email":"ana@example.com"}`, string(res[0].Details))
	assert.Nil(t, res[1].Details)
}
