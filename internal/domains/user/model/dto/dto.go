package dto

import (
	"strings"

	"workforce/internal/domains/user/model"
	"workforce/shared"
	"workforce/shared/constant"
	gDto "workforce/shared/dto"
	gModel "workforce/shared/model"
	"workforce/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

func (r *CreateUserRequest) ToModel(hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = constant.RoleUser
	}

	now := timezone.Now()

	return model.User{
		ID:           uuid.NewString(),
		Email:        NormalizeEmail(r.Email),
		PasswordHash: hashedPassword,
		Role:         role,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// NormalizeEmail lower-cases and trims an address before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Role = model.Role
	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse gDto.PaginatedResponse[UserResponse]

func (r *GetUsersResponse) FromModels(models []model.User, total, limit int) {
	r.Items = make([]UserResponse, 0, len(models))

	for _, m := range models {
		var item UserResponse
		item.FromModel(m)
		r.Items = append(r.Items, item)
	}

	r.TotalData = total
	r.TotalPage = shared.CalculateTotalPage(total, limit)
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

func (r *UpdateRoleRequest) ToUpdateFields() map[string]any {
	return map[string]any{
		model.FieldRole:         r.Role,
		constant.FieldUpdatedAt: timezone.Now(),
	}
}

type UserFilter struct {
	Email string
	Role  string
}

func (f UserFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	shared.AppendFilter(&group, model.TableName, model.FieldEmail, gDto.FilterOperatorLike, f.Email)
	shared.AppendFilter(&group, model.TableName, model.FieldRole, gDto.FilterOperatorEq, f.Role)

	return group
}
