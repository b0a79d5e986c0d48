package customvalidator

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations registers the domain rules on the shared validator
// instance.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("gear_condition", isGearCondition); err != nil {
		return err
	}
	if err := v.RegisterValidation("request_status", isRequestStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("report_date", isReportDate); err != nil {
		return err
	}
	return nil
}

func isGearCondition(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "good", "damaged":
		return true
	}
	return false
}

func isRequestStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "approved", "rejected", "checked_out", "returned", "cancelled":
		return true
	}
	return false
}

func isReportDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}
