package dto

import (
	"workforce/internal/domains/invoice/model"
	"workforce/shared"
	"workforce/shared/constant"
	gDto "workforce/shared/dto"
	gModel "workforce/shared/model"
	"workforce/shared/timezone"

	"github.com/google/uuid"
)

type CreateInvoiceRequest struct {
	BookingID string   `json:"booking_id" validate:"required,uuid"`
	AmountDue *float64 `json:"amount_due" validate:"required,gte=0"`
	Status    string   `json:"status"     validate:"omitempty,max=50"`
}

func (c *CreateInvoiceRequest) ToModel() model.Invoice {
	status := model.StatusUnpaid
	if c.Status != constant.Empty {
		status = c.Status
	}

	now := timezone.Now()

	return model.Invoice{
		ID:        uuid.NewString(),
		BookingID: c.BookingID,
		AmountDue: *c.AmountDue,
		Status:    status,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

type UpdateInvoiceRequest struct {
	BookingID *string  `json:"booking_id" validate:"omitempty,uuid"`
	AmountDue *float64 `json:"amount_due" validate:"omitempty,gte=0"`
	Status    *string  `json:"status"     validate:"omitempty,min=1,max=50"`
}

func (u *UpdateInvoiceRequest) ToUpdateFields() map[string]any {
	fields := map[string]any{constant.FieldUpdatedAt: timezone.Now()}

	if u.BookingID != nil {
		fields[model.FieldBookingID] = *u.BookingID
	}

	if u.AmountDue != nil {
		fields[model.FieldAmountDue] = *u.AmountDue
	}

	if u.Status != nil {
		fields[model.FieldStatus] = *u.Status
	}

	return fields
}

type InvoiceResponse struct {
	ID        string  `json:"id"`
	BookingID string  `json:"booking_id"`
	AmountDue float64 `json:"amount_due"`
	Status    string  `json:"status"`
	gDto.Metadata
}

func (r *InvoiceResponse) FromModel(model model.Invoice) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.AmountDue = model.AmountDue
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetInvoicesResponse gDto.PaginatedResponse[InvoiceResponse]

func (r *GetInvoicesResponse) FromModels(models []model.Invoice, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Items = make([]InvoiceResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}
}

type InvoiceFilter struct {
	BookingID string `validate:"omitempty,uuid"`
	Status    string `validate:"omitempty,max=50"`
}

func (f InvoiceFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	shared.AppendFilter(&group, model.TableName, model.FieldBookingID, gDto.FilterOperatorEq, f.BookingID)
	shared.AppendFilter(&group, model.TableName, model.FieldStatus, gDto.FilterOperatorEq, f.Status)

	return group
}
