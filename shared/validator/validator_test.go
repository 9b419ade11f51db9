package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roombooker/shared/failure"
	"roombooker/shared/validator"
)

type roomRequest struct {
	Name     string `json:"name"      validate:"required"`
	Email    string `json:"email"     validate:"omitempty,email"`
	Capacity int    `json:"capacity"  validate:"gte=1,lte=500"`
	Start    string `json:"start"     validate:"required,hhmm"`
	Date     string `json:"date"      validate:"omitempty,isodate"`
	Status   string `json:"status"    validate:"omitempty,oneof=pending approved"`
}

type uploadRequest struct {
	MimeType string `validate:"mimetypes=image/jpeg image/png"`
	Size     int    `validate:"maxfilesize=1"`
}

func TestValidateStruct(t *testing.T) {
	valid := roomRequest{Name: "Sala VIP", Capacity: 8, Start: "07:00", Date: "2025-03-10", Status: "pending"}

	tests := []struct {
		name    string
		mutate  func(r *roomRequest)
		wantMsg string
	}{
		{name: "valid", mutate: func(*roomRequest) {}},
		{name: "missing name", mutate: func(r *roomRequest) { r.Name = "" }, wantMsg: "Name is required"},
		{name: "bad email", mutate: func(r *roomRequest) { r.Email = "nope" }, wantMsg: "Email must be a valid email address"},
		{name: "capacity too small", mutate: func(r *roomRequest) { r.Capacity = 0 }, wantMsg: "Capacity must be greater than or equal to 1"},
		{name: "hour out of range", mutate: func(r *roomRequest) { r.Start = "24:00" }, wantMsg: "Start must be a time in HH:MM format"},
		{name: "single digit hour", mutate: func(r *roomRequest) { r.Start = "7:00" }, wantMsg: "Start must be a time in HH:MM format"},
		{name: "impossible date", mutate: func(r *roomRequest) { r.Date = "2025-02-30" }, wantMsg: "Date must be a date in YYYY-MM-DD format"},
		{name: "unknown status", mutate: func(r *roomRequest) { r.Status = "cancelled" }, wantMsg: "Status must be one of pending approved"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Equal(t, 400, failure.GetCode(err))
		})
	}
}

func TestValidateStruct_Upload(t *testing.T) {
	tests := []struct {
		name    string
		req     uploadRequest
		wantErr bool
	}{
		{name: "png within limit", req: uploadRequest{MimeType: "image/png", Size: 512 * 1024}},
		{name: "mime with parameters", req: uploadRequest{MimeType: "image/jpeg; charset=binary", Size: 10}},
		{name: "pdf rejected", req: uploadRequest{MimeType: "application/pdf", Size: 10}, wantErr: true},
		{name: "empty mime rejected", req: uploadRequest{Size: 10}, wantErr: true},
		{name: "too large", req: uploadRequest{MimeType: "image/png", Size: 2 * 1024 * 1024}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)

			assert.Equal(t, tt.wantErr, err != nil, "err: %v", err)
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("23:59", "hhmm"))
	assert.Error(t, validator.ValidateVar("12:60", "hhmm"))
	assert.NoError(t, validator.ValidateVar("2024-02-29", "isodate"))
	assert.Error(t, validator.ValidateVar("2023-02-29", "isodate"))
	assert.NoError(t, validator.ValidateVar("", "empty"))
	assert.Error(t, validator.ValidateVar("x", "empty"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid body", body: `{"name":"Sala VIP","capacity":8,"start":"09:30"}`},
		{name: "invalid field", body: `{"name":"Sala VIP","capacity":8,"start":"9:30"}`, wantErr: true},
		{name: "malformed json", body: `{"name":`, wantErr: true},
		{name: "empty object", body: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req roomRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 400, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "Sala VIP", req.Name)
		})
	}
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, validator.ValidateID("6f1c1c2e-8a6b-4a8e-9d7f-3c2b1a0e9f11", "room"))

	err := validator.ValidateID("room-1", "room")
	require.Error(t, err)
	assert.Equal(t, "room id must be a valid UUID", err.Error())
	assert.Equal(t, 400, failure.GetCode(err))

	assert.Error(t, validator.ValidateID("", "booking"))
}
