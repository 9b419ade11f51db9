package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roombooker/internal/domains/booking/model"
	"roombooker/internal/domains/history/model/dto"
)

func TestStatsResponse_FromCounts(t *testing.T) {
	var res dto.StatsResponse
	res.FromCounts(
		[]model.StatusCount{
			{Status: model.StatusApproved, Count: 4},
			{Status: model.StatusCancelled, Count: 1},
			{Status: model.StatusPending, Count: 2},
		},
		[]model.RoomCount{{RoomID: "room-1", RoomName: "Sala VIP", Count: 7}},
		[]model.MonthCount{{Month: "2025-02", Count: 3}, {Month: "2025-03", Count: 4}},
	)

	assert.Equal(t, dto.Summary{Total: 7, Pending: 2, Approved: 4, Cancelled: 1}, res.Summary)
	assert.Equal(t, []dto.RoomStat{{RoomID: "room-1", RoomName: "Sala VIP", Count: 7}}, res.ByRoom)
	assert.Len(t, res.ByMonth, 2)
	assert.Equal(t, "2025-03", res.ByMonth[1].Month)
}

func TestStatsResponse_FromCounts_Empty(t *testing.T) {
	var res dto.StatsResponse
	res.FromCounts(nil, nil, nil)

	assert.Zero(t, res.Summary.Total)
	assert.NotNil(t, res.ByRoom)
	assert.NotNil(t, res.ByMonth)
}
