package model

import (
	"workforce/shared/constant"
	"workforce/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID           = "id"
	FieldEmail        = "email"
	FieldPasswordHash = "password_hash"
	FieldRole         = "role"
)

// SortableFields are the columns a user list may be ordered by.
var SortableFields = []string{FieldEmail, FieldRole, constant.FieldCreatedAt, constant.FieldUpdatedAt}

type User struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	model.Metadata
}
