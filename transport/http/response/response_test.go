package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roombooker/shared/constant"
	"roombooker/shared/failure"
)

type roomPayload struct {
	RoomID string `json:"room_id"`
	Slots  []int  `json:"slots"`
}

func TestWithJSON(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		want    string
	}{
		{
			name:    "struct",
			payload: roomPayload{RoomID: "r-1", Slots: []int{420, 450}},
			want:    `{"data":{"room_id":"r-1","slots":[420,450]}}`,
		},
		{
			name:    "pointer to struct",
			payload: &roomPayload{RoomID: "r-2"},
			want:    `{"data":{"room_id":"r-2","slots":null}}`,
		},
		{
			name:    "map",
			payload: map[string]string{"a": "b"},
			want:    `{"data":{"a":"b"}}`,
		},
		{
			name:    "slice",
			payload: []roomPayload{{RoomID: "r-1"}, {RoomID: "r-2"}},
			want:    `{"data":[{"room_id":"r-1","slots":null},{"room_id":"r-2","slots":null}]}`,
		},
		{
			name:    "nil",
			payload: nil,
			want:    `{"data":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			require.NotPanics(t, func() { WithJSON(rec, http.StatusCreated, tt.payload) })

			assert.Equal(t, http.StatusCreated, rec.Code)
			assert.Equal(t, constant.ContentTypeJSON, rec.Header().Get(constant.RequestHeaderContentType))
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

func TestWithJSON_DecodesIntoTypedEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WithJSON(rec, http.StatusOK, roomPayload{RoomID: "r-1", Slots: []int{420}})

	var body Data[roomPayload]

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, roomPayload{RoomID: "r-1", Slots: []int{420}}, body.Data)
}

func TestWithMessageAndError(t *testing.T) {
	rec := httptest.NewRecorder()
	WithMessage(rec, http.StatusOK, "booking cancelled")

	assert.JSONEq(t, `{"message":"booking cancelled"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	WithError(rec, failure.NotFound("room not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"room not found"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	WithRequestLimitExceeded(rec)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
