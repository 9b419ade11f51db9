package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"roombooker/shared/failure"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("bad input")), code: http.StatusBadRequest, msg: "bad input"},
		{name: "bad request from string", err: failure.BadRequestFromString("week_start is invalid"), code: http.StatusBadRequest, msg: "week_start is invalid"},
		{name: "unauthorized", err: failure.Unauthorized("invalid token"), code: http.StatusUnauthorized, msg: "invalid token"},
		{name: "forbidden", err: failure.Forbidden("nope"), code: http.StatusForbidden, msg: "nope"},
		{name: "not found", err: failure.NotFound("room not found"), code: http.StatusNotFound, msg: "room not found"},
		{name: "conflict", err: failure.Conflict("booking is not pending"), code: http.StatusConflict, msg: "booking is not pending"},
		{name: "payload too large", err: failure.PayloadTooLarge("file must not exceed 5 MB"), code: http.StatusRequestEntityTooLarge, msg: "file must not exceed 5 MB"},
		{name: "internal", err: failure.InternalError(errors.New("boom")), code: http.StatusInternalServerError, msg: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode_Wrapped(t *testing.T) {
	err := fmt.Errorf("service: %w", failure.NotFound("booking not found"))

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
}

func TestFromPqError(t *testing.T) {
	fk := fmt.Errorf("delete: %w", &pq.Error{Code: "23503"})
	unique := &pq.Error{Code: "23505"}
	other := &pq.Error{Code: "42601"}
	plain := errors.New("connection refused")

	assert.Equal(t, http.StatusConflict, failure.GetCode(failure.FromPqError(fk, "room has bookings")))
	assert.Equal(t, "room has bookings", failure.FromPqError(fk, "room has bookings").Error())
	assert.Equal(t, http.StatusConflict, failure.GetCode(failure.FromPqError(unique, "duplicate")))
	assert.Same(t, other, failure.FromPqError(other, "x"))
	assert.Equal(t, plain, failure.FromPqError(plain, "x"))
}
