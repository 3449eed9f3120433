package dto

import (
	"workforce/shared/constant"
	"workforce/shared/model"
	"workforce/shared/timezone"
)

type Metadata struct {
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
	m.UpdatedAt = timezone.Format(model.UpdatedAt, constant.DateFormat)
}

// PaginatedResponse is the list envelope returned by every collection endpoint.
type PaginatedResponse[T any] struct {
	Items     []T `json:"items"`
	TotalData int `json:"total_data"`
	TotalPage int `json:"total_page"`
}
