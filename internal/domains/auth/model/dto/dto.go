package dto

import (
	"workforce/infras/jwt"
	userModel "workforce/internal/domains/user/model"
	userDto "workforce/internal/domains/user/model/dto"
	"workforce/shared/constant"
	"workforce/shared/timezone"
)

// UserResponse is the account view returned by signup and /auth/users/me.
type UserResponse = userDto.UserResponse

type SignupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

// ToCreateUser keeps the requested role so the service can refuse self-promotion.
func (r *SignupRequest) ToCreateUser() userDto.CreateUserRequest {
	return userDto.CreateUserRequest{
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
	}
}

// LoginRequest accepts either an email or the OAuth2 password-flow "username" field.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required_without=Username,omitempty,email"`
	Username string `json:"username" validate:"required_without=Email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Identity() string {
	if r.Email != constant.Empty {
		return userDto.NormalizeEmail(r.Email)
	}

	return userDto.NormalizeEmail(r.Username)
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,max=72,nefield=CurrentPassword"`
}

func (r *ChangePasswordRequest) ToUpdateFields(hashedPassword string) map[string]any {
	return map[string]any{
		userModel.FieldPasswordHash: hashedPassword,
		constant.FieldUpdatedAt:     timezone.Now(),
	}
}
