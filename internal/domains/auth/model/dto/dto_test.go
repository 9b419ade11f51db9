package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roombooker/infras/jwt"
	adminModel "roombooker/internal/domains/admin/model"
	"roombooker/internal/domains/auth/model/dto"
	"roombooker/shared/validator"
)

func TestLoginRequest_Identifier(t *testing.T) {
	req := dto.LoginRequest{Username: "  admin@roombooker.com "}

	assert.Equal(t, "admin@roombooker.com", req.Identifier())
}

func TestLoginResponse_FromToken(t *testing.T) {
	lastLogin := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	admin := adminModel.Admin{ID: "admin-1", Username: "admin", Email: "admin@roombooker.com", Role: "admin", LastLogin: &lastLogin}

	var res dto.LoginResponse
	res.FromToken(&jwt.Token{AccessToken: "signed", TokenType: "Bearer", ExpiresIn: 60}, admin)

	assert.Equal(t, "signed", res.Token)
	assert.Equal(t, int64(60), res.ExpiresIn)
	assert.Equal(t, "admin", res.Admin.Username)
	require.NotNil(t, res.Admin.LastLogin)
}

func TestAdminProfile_FromModel_NeverLoggedIn(t *testing.T) {
	var profile dto.AdminProfile
	profile.FromModel(adminModel.Admin{ID: "admin-1"})

	assert.Nil(t, profile.LastLogin)
}

func TestChangePasswordRequest_Validation(t *testing.T) {
	assert.NoError(t, validator.ValidateStruct(&dto.ChangePasswordRequest{CurrentPassword: "admin123", NewPassword: "s3cure-pass"}))
	assert.Error(t, validator.ValidateStruct(&dto.ChangePasswordRequest{CurrentPassword: "admin123", NewPassword: "short"}))
	assert.Error(t, validator.ValidateStruct(&dto.ChangePasswordRequest{CurrentPassword: "admin1234", NewPassword: "admin1234"}))
}
