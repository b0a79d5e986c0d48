package dto

type CreateRequestItemDTO struct {
	EquipmentID uint64 `json:"equipment_id" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
}

type CreateRequestDTO struct {
	Destination  string                 `json:"destination" validate:"required"`
	Reason       string                 `json:"reason" validate:"required"`
	DurationDays int                    `json:"duration_days" validate:"required,min=1,max=365"`
	Items        []CreateRequestItemDTO `json:"items" validate:"required,min=1,dive"`
}

type RejectRequestDTO struct {
	Reason string `json:"reason" validate:"required"`
}

// ReturnRequestDTO reports the condition of each item coming back.
type ReturnRequestDTO struct {
	Items []ReturnItemDTO `json:"items" validate:"required,min=1,dive"`
}

type ReturnItemDTO struct {
	EquipmentID uint64 `json:"equipment_id" validate:"required"`
	Condition   string `json:"condition" validate:"required,gear_condition"`
	Notes       string `json:"notes"`
}
