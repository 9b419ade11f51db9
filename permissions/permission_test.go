package permissions

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_LoadsEmbeddedFile(t *testing.T) {
	data := Get()
	require.NotNil(t, data)
	assert.False(t, data.Skip)
	assert.NotEmpty(t, data.Endpoints)
}

func TestFindPermissions(t *testing.T) {
	data := Get()
	require.NotNil(t, data)

	tests := []struct {
		name     string
		path     string
		method   string
		wantSkip bool
		wantRole []string
	}{
		{name: "public room list", path: "/v1/rooms/", method: http.MethodGet, wantSkip: true},
		{name: "public room list without slash", path: "/v1/rooms", method: http.MethodGet, wantSkip: true},
		{name: "admin room create", path: "/v1/rooms/", method: http.MethodPost, wantRole: []string{"admin"}},
		{name: "public calendar", path: "/v1/calendar/", method: http.MethodGet, wantSkip: true},
		{name: "user cancellation", path: "/v1/bookings/{id}/cancel-user", method: http.MethodPost, wantSkip: true},
		{name: "admin cancellation", path: "/v1/bookings/{id}/cancel", method: http.MethodPut, wantRole: []string{"admin"}},
		{name: "lowercase method", path: "/v1/history/stats/summary", method: "get", wantRole: []string{"admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.wantSkip, permission.Skip)

			if tt.wantRole != nil {
				assert.Equal(t, tt.wantRole, permission.Permissions)
			}
		})
	}
}

func TestFindPermissions_Unknown(t *testing.T) {
	data, err := Parse([]byte(`{"endpoints":[{"path":"/v1/a","method":"GET","skip":true}]}`))
	require.NoError(t, err)

	permission := data.FindPermissions("/v1/b", http.MethodGet)

	assert.Equal(t, Permission{}, permission)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`{`))

	assert.Error(t, err)
}
