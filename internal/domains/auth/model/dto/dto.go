package dto

import (
	"strings"
	"time"

	"roombooker/infras/jwt"
	adminModel "roombooker/internal/domains/admin/model"
	"roombooker/shared/constant"
	"roombooker/shared/timezone"
)

// LoginRequest accepts either the username or the email in Username.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Identifier() string {
	return strings.TrimSpace(r.Username)
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login"`
}

type AdminProfile struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	LastLogin *string `json:"last_login,omitempty"`
}

func (p *AdminProfile) FromModel(model adminModel.Admin) {
	p.ID = model.ID
	p.Username = model.Username
	p.Email = model.Email
	p.Role = model.Role

	if model.LastLogin != nil {
		lastLogin := timezone.Format(*model.LastLogin, constant.DateFormat)
		p.LastLogin = &lastLogin
	}
}

type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int64        `json:"expires_in"`
	Admin     AdminProfile `json:"admin"`
}

func (r *LoginResponse) FromToken(token *jwt.Token, admin adminModel.Admin) {
	r.Token = token.AccessToken
	r.TokenType = token.TokenType
	r.ExpiresIn = token.ExpiresIn
	r.Admin.FromModel(admin)
}

type VerifyResponse struct {
	Valid bool         `json:"valid"`
	Admin AdminProfile `json:"admin"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	PasswordHash string `db:"password_hash"`
}
