package model

import (
	"time"

	"roombooker/shared/model"
)

const (
	TableName  = "admins"
	EntityName = "admin"

	FieldID           = "id"
	FieldUsername     = "username"
	FieldEmail        = "email"
	FieldPasswordHash = "password_hash"
	FieldRole         = "role"
	FieldIsActive     = "is_active"
	FieldLastLogin    = "last_login"
)

type Admin struct {
	ID           string     `db:"id"`
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Role         string     `db:"role"`
	IsActive     bool       `db:"is_active"`
	LastLogin    *time.Time `db:"last_login"`
	model.Metadata
}
