package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"roombooker/infras/jwt"
	"roombooker/infras/otel"
	adminModel "roombooker/internal/domains/admin/model"
	adminRepo "roombooker/internal/domains/admin/repository"
	"roombooker/internal/domains/auth/model/dto"
	"roombooker/shared"
	"roombooker/shared/constant"
	gDto "roombooker/shared/dto"
	"roombooker/shared/failure"
	"roombooker/shared/password"
	"roombooker/shared/timezone"
)

const (
	msgInvalidCredentials = "invalid credentials"
	msgAccountInactive    = "admin account is inactive"
	msgWrongPassword      = "current password is incorrect"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Verify(ctx context.Context) (dto.VerifyResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	adminRepo  adminRepo.Admin
	jwtService jwt.JWT
	clock      timezone.Clock
	otel       otel.Otel
}

func New(adminRepo adminRepo.Admin, jwt jwt.JWT, clock timezone.Clock, otel otel.Otel) Auth {
	return &serviceImpl{
		adminRepo:  adminRepo,
		jwtService: jwt,
		clock:      clock,
		otel:       otel,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	identifier := req.Identifier()

	admin, err := s.adminRepo.Get(ctx, byUsernameOrEmail(identifier))
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return res, fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty {
		log.Warn().Str("identifier", identifier).Msg("login attempt with unknown admin")

		return res, failure.Unauthorized(msgInvalidCredentials)
	}

	if !admin.IsActive {
		return res, failure.Unauthorized(msgAccountInactive)
	}

	if err = password.Verify(req.Password, admin.PasswordHash); err != nil {
		if !errors.Is(err, password.ErrInvalidPassword) {
			log.Error().Err(err).Str("admin_id", admin.ID).Msg("failed to verify password")
		}

		log.Warn().Str("identifier", identifier).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(msgInvalidCredentials)
	}

	token, err := s.jwtService.GenerateToken(admin.ID, admin.Username, admin.Email, admin.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")

		return res, fmt.Errorf("failed to generate token: %w", err)
	}

	now := s.clock.Now()
	fields := shared.TransformFields(dto.UpdateLastLoginRequest{LastLogin: now}, admin.Username)

	if err = s.adminRepo.Update(ctx, fields, byID(admin.ID)); err != nil {
		log.Error().Err(err).Str("admin_id", admin.ID).Msg("failed to update last login")

		return res, fmt.Errorf("failed to update last login: %w", err)
	}

	admin.LastLogin = &now

	res.FromToken(token, admin)

	return res, nil
}

func (s *serviceImpl) Verify(ctx context.Context) (res dto.VerifyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Verify")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	admin, err := s.current(ctx)
	if err != nil {
		return res, err
	}

	res.Valid = true
	res.Admin.FromModel(admin)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	admin, err := s.current(ctx)
	if err != nil {
		return err
	}

	if err = password.Verify(req.CurrentPassword, admin.PasswordHash); err != nil {
		return failure.BadRequestFromString(msgWrongPassword)
	}

	hashed, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	fields := shared.TransformFields(dto.UpdatePasswordRequest{PasswordHash: hashed}, admin.Username)

	if err = s.adminRepo.Update(ctx, fields, byID(admin.ID)); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// current loads the admin named by the token claims in ctx. A deleted or
// deactivated admin no longer authenticates.
func (s *serviceImpl) current(ctx context.Context) (adminModel.Admin, error) {
	adminID, _ := ctx.Value(constant.ContextKeyAdminID).(string)
	if adminID == constant.Empty {
		return adminModel.Admin{}, failure.Unauthorized(jwt.ErrInvalidClaim.Error())
	}

	admin, err := s.adminRepo.Get(ctx, byID(adminID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return admin, fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty {
		return admin, failure.Unauthorized(msgInvalidCredentials)
	}

	if !admin.IsActive {
		return admin, failure.Unauthorized(msgAccountInactive)
	}

	return admin, nil
}

func byID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, adminModel.FieldID, adminModel.TableName)
}

func byUsernameOrEmail(identifier string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{
				Field:    adminModel.FieldUsername,
				Operator: gDto.FilterOperatorEq,
				Value:    identifier,
				Table:    adminModel.TableName,
			},
			gDto.Filter{
				Field:    adminModel.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    identifier,
				Table:    adminModel.TableName,
			},
		},
	}
}
