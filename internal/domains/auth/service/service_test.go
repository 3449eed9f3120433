package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"workforce/config"
	"workforce/infras/jwt"
	jwtMocks "workforce/infras/jwt/mocks"
	otelMocks "workforce/infras/otel/mocks"
	"workforce/internal/domains/auth/model/dto"
	"workforce/internal/domains/auth/service"
	userMocks "workforce/internal/domains/user/mocks"
	userModel "workforce/internal/domains/user/model"
	userDto "workforce/internal/domains/user/model/dto"
	userService "workforce/internal/domains/user/service"
	"workforce/shared/constant"
	gDto "workforce/shared/dto"
	"workforce/shared/failure"
	"workforce/shared/password"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "workforce-lodging"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 30
	cfg.JWT.RefreshExpireMin = 60

	return cfg
}

func storedUser(t *testing.T, email, plain, role string) userModel.User {
	t.Helper()

	hash, err := password.Hash(plain)
	require.NoError(t, err)

	return userModel.User{ID: uuid.NewString(), Email: email, PasswordHash: hash, Role: role}
}

func TestAuthService_SignupLoginAuthenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := userMocks.NewMockUser(ctrl)
	ot := otelMocks.NewOtel()
	svc := service.New(repo, userService.New(repo, ot), ot, jwt.New(newConfig()))

	var saved userModel.User

	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u userModel.User) error {
		saved = u

		return nil
	})

	created, err := svc.Signup(context.Background(), dto.SignupRequest{Email: "Guest@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", created.Email)
	assert.Equal(t, constant.RoleUser, created.Role)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(saved, nil).Times(3)

	token, err := svc.Login(context.Background(), dto.LoginRequest{Username: "guest@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, constant.TokenTypeBearer, token.TokenType)
	assert.NotEmpty(t, token.AccessToken)

	user, err := svc.Authenticate(context.Background(), token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, user.ID)

	refreshed, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: token.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestAuthService_Signup(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := userMocks.NewMockUserService(ctrl)
	svc := service.New(userMocks.NewMockUser(ctrl), users, otelMocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

	t.Run("admin role refused", func(t *testing.T) {
		_, err := svc.Signup(context.Background(), dto.SignupRequest{Email: "a@example.com", Password: "secret1", Role: constant.RoleAdmin})

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("duplicate email", func(t *testing.T) {
		users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(userDto.UserResponse{}, failure.Conflict("email already registered"))

		_, err := svc.Signup(context.Background(), dto.SignupRequest{Email: "a@example.com", Password: "secret1"})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("explicit user role", func(t *testing.T) {
		users.EXPECT().Create(gomock.Any(), userDto.CreateUserRequest{Email: "b@example.com", Password: "secret1", Role: constant.RoleUser}).
			Return(userDto.UserResponse{Email: "b@example.com", Role: constant.RoleUser}, nil)

		res, err := svc.Signup(context.Background(), dto.SignupRequest{Email: "b@example.com", Password: "secret1", Role: constant.RoleUser})

		require.NoError(t, err)
		assert.Equal(t, constant.RoleUser, res.Role)
	})
}

func TestAuthService_Login(t *testing.T) {
	alice := storedUser(t, "alice@example.com", "password", constant.RoleUser)

	tests := []struct {
		name     string
		req      dto.LoginRequest
		setup    func(repo *userMocks.MockUser, tokens *jwtMocks.MockJWT)
		wantCode int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "alice@example.com", Password: "password"},
			setup: func(repo *userMocks.MockUser, tokens *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(alice, nil)
				tokens.EXPECT().GenerateTokenPair(alice.Email, alice.Role).Return(&jwt.TokenPair{
					AccessToken:  "access-token",
					RefreshToken: "refresh-token",
					TokenType:    constant.TokenTypeBearer,
					ExpiresIn:    1800,
				}, nil)
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@example.com", Password: "password"},
			setup: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "alice@example.com", Password: "wrong"},
			setup: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(alice, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "repository failure",
			req:  dto.LoginRequest{Email: "alice@example.com", Password: "password"},
			setup: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("connection reset"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := userMocks.NewMockUser(ctrl)
			tokens := jwtMocks.NewMockJWT(ctrl)
			svc := service.New(repo, userMocks.NewMockUserService(ctrl), otelMocks.NewOtel(), tokens)

			tt.setup(repo, tokens)

			res, err := svc.Login(context.Background(), tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, constant.TokenTypeBearer, res.TokenType)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	cfg := newConfig()
	tokens := jwt.New(cfg)

	t.Run("expired token", func(t *testing.T) {
		expiredCfg := newConfig()
		expiredCfg.JWT.AccessExpireMin = -1

		pair, err := jwt.New(expiredCfg).GenerateTokenPair("alice@example.com", constant.RoleUser)
		require.NoError(t, err)

		ctrl := gomock.NewController(t)
		svc := service.New(userMocks.NewMockUser(ctrl), userMocks.NewMockUserService(ctrl), otelMocks.NewOtel(), tokens)

		_, err = svc.Authenticate(context.Background(), pair.AccessToken)

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("garbage token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := service.New(userMocks.NewMockUser(ctrl), userMocks.NewMockUserService(ctrl), otelMocks.NewOtel(), tokens)

		_, err := svc.Authenticate(context.Background(), "not.a.token")

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("subject no longer exists", func(t *testing.T) {
		pair, err := tokens.GenerateTokenPair("gone@example.com", constant.RoleUser)
		require.NoError(t, err)

		ctrl := gomock.NewController(t)
		repo := userMocks.NewMockUser(ctrl)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
		svc := service.New(repo, userMocks.NewMockUserService(ctrl), otelMocks.NewOtel(), tokens)

		_, err = svc.Authenticate(context.Background(), pair.AccessToken)

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("refresh token cannot authenticate", func(t *testing.T) {
		pair, err := tokens.GenerateTokenPair("alice@example.com", constant.RoleUser)
		require.NoError(t, err)

		ctrl := gomock.NewController(t)
		svc := service.New(userMocks.NewMockUser(ctrl), userMocks.NewMockUserService(ctrl), otelMocks.NewOtel(), tokens)

		_, err = svc.Authenticate(context.Background(), pair.RefreshToken)

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_RequireRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := service.New(userMocks.NewMockUser(ctrl), userMocks.NewMockUserService(ctrl), otelMocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

	admin := userModel.User{Role: constant.RoleAdmin}
	user := userModel.User{Role: constant.RoleUser}

	assert.NoError(t, svc.RequireRole(admin, constant.RoleAdmin))
	assert.NoError(t, svc.RequireRole(user, constant.RoleUser, constant.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, failure.GetCode(svc.RequireRole(user, constant.RoleAdmin)))
	assert.Equal(t, http.StatusForbidden, failure.GetCode(svc.RequireRole(admin)))
}

func TestAuthService_ChangePassword(t *testing.T) {
	alice := storedUser(t, "alice@example.com", "old-secret", constant.RoleUser)

	t.Run("updates hash", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := userMocks.NewMockUser(ctrl)
		svc := service.New(repo, userMocks.NewMockUserService(ctrl), otelMocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(alice, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
				hash, ok := fields[userModel.FieldPasswordHash].(string)
				require.True(t, ok)
				assert.NoError(t, password.Verify("new-secret", hash))

				return 1, nil
			})

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{CurrentPassword: "old-secret", NewPassword: "new-secret"}, alice.Email)

		assert.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := userMocks.NewMockUser(ctrl)
		svc := service.New(repo, userMocks.NewMockUserService(ctrl), otelMocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(alice, nil)

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "new-secret"}, alice.Email)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestAuthService_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := userMocks.NewMockUser(ctrl)
	svc := service.New(repo, userMocks.NewMockUserService(ctrl), otelMocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "u-1", Email: "alice@example.com", Role: constant.RoleUser, PasswordHash: "hash"}, nil)

	res, err := svc.Me(context.Background(), "alice@example.com")

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", res.Email)
}
