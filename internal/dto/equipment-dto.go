package dto

import "github.com/aarondl/null/v8"

type CreateEquipmentDTO struct {
	Name     string `json:"name" validate:"required,min=2"`
	Category string `json:"category" validate:"required"`
}

type UpdateEquipmentDTO struct {
	Name     null.String `json:"name"`
	Category null.String `json:"category"`
	ImageURL null.String `json:"image_url"`
}
