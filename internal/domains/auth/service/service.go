package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"workforce/infras/jwt"
	"workforce/infras/otel"
	"workforce/internal/domains/auth/model/dto"
	userModel "workforce/internal/domains/user/model"
	userDto "workforce/internal/domains/user/model/dto"
	userRepo "workforce/internal/domains/user/repository"
	userService "workforce/internal/domains/user/service"
	"workforce/shared"
	"workforce/shared/constant"
	"workforce/shared/failure"
	"workforce/shared/metrics"
	"workforce/shared/password"

	"github.com/rs/zerolog/log"
)

const (
	reasonUnknownUser   = "unknown_user"
	reasonWrongPassword = "wrong_password"
	reasonInvalidToken  = "invalid_token"
	reasonExpiredToken  = "expired_token"
	reasonForbidden     = "forbidden"
)

type Auth interface {
	Signup(ctx context.Context, req dto.SignupRequest) (userDto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.LoginResponse, error)
	Authenticate(ctx context.Context, token string) (userModel.User, error)
	RequireRole(user userModel.User, roles ...string) error
	Me(ctx context.Context, email string) (userDto.UserResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, email string) error
}

type serviceImpl struct {
	userRepo    userRepo.User
	userService userService.User
	otel        otel.Otel
	jwtService  jwt.JWT
}

func New(userRepo userRepo.User, userService userService.User, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:    userRepo,
		userService: userService,
		otel:        otel,
		jwtService:  jwt,
	}
}

func (s *serviceImpl) findByEmail(ctx context.Context, email string) (userModel.User, error) {
	filter := shared.FilterByID(userDto.NormalizeEmail(email), userModel.FieldEmail, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		return user, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (s *serviceImpl) Signup(ctx context.Context, req dto.SignupRequest) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Signup")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Role != constant.Empty && req.Role != constant.RoleUser {
		log.Warn().Str("email", req.Email).Str("role", req.Role).Msg("signup attempted with elevated role")

		return res, failure.Forbidden("signup can only create user accounts")
	}

	return s.userService.Create(ctx, req.ToCreateUser())
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.findByEmail(ctx, req.Identity())
	if err != nil {
		log.Error().Err(err).Msg("failed to look up user for login")

		return res, err
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Identity()).Msg("login attempt with unknown email")
		metrics.IncAuthFailure(reasonUnknownUser)

		return res, failure.InvalidCredentials
	}

	if err = password.Verify(req.Password, user.PasswordHash); err != nil {
		log.Warn().Str("email", user.Email).Msg("login attempt with wrong password")
		metrics.IncAuthFailure(reasonWrongPassword)

		return res, failure.InvalidCredentials
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

// RefreshToken re-reads the account so a changed role or a removed user takes effect.
func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userFromToken(ctx, req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		return res, err
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) Authenticate(ctx context.Context, token string) (user userModel.User, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Authenticate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.userFromToken(ctx, token, jwt.AccessToken)
}

func (s *serviceImpl) userFromToken(ctx context.Context, token string, tokenType jwt.TokenType) (userModel.User, error) {
	claims, err := s.jwtService.ValidateToken(token, tokenType)
	if err != nil {
		reason := reasonInvalidToken
		if errors.Is(err, jwt.ErrExpiredToken) {
			reason = reasonExpiredToken
		}

		log.Debug().Err(err).Str("type", string(tokenType)).Msg("token rejected")
		metrics.IncAuthFailure(reason)

		return userModel.User{}, failure.CouldNotValidateCredentials
	}

	user, err := s.findByEmail(ctx, claims.Email())
	if err != nil {
		log.Error().Err(err).Msg("failed to look up token subject")

		return user, failure.CouldNotValidateCredentials
	}

	if user.ID == constant.Empty {
		metrics.IncAuthFailure(reasonUnknownUser)

		return user, failure.CouldNotValidateCredentials
	}

	return user, nil
}

func (s *serviceImpl) RequireRole(user userModel.User, roles ...string) error {
	if slices.Contains(roles, user.Role) {
		return nil
	}

	metrics.IncAuthFailure(reasonForbidden)

	return failure.ForbiddenError
}

func (s *serviceImpl) Me(ctx context.Context, email string) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Me")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.findByEmail(ctx, email)
	if err != nil {
		log.Error().Err(err).Msg("failed to get current user")

		return res, err
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found")
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, email string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.findByEmail(ctx, email)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return err
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found")
	}

	if err = password.Verify(req.CurrentPassword, user.PasswordHash); err != nil {
		metrics.IncAuthFailure(reasonWrongPassword)

		return failure.BadRequestFromString("current password is incorrect")
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return failure.BadRequest(err)
	}

	filter := shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)

	if _, err = s.userRepo.Update(ctx, req.ToUpdateFields(hashedPassword), filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
