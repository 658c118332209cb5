package validator

import (
	"errors"
	"fmt"
	"hotelres/internal/inventory"
	"hotelres/pkg/logger"
	"hotelres/pkg/model"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Details flattens the errors into a field -> message map for API responses.
func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

type ReservationValidator struct {
	validate  *validator.Validate
	inventory *inventory.Inventory
	logger    *logger.Logger
}

func NewReservationValidator(log *logger.Logger, inv *inventory.Inventory) *ReservationValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	rv := &ReservationValidator{
		validate:  v,
		inventory: inv,
		logger:    log,
	}

	if err := v.RegisterValidation("room_type", rv.validateRoomType); err != nil {
		log.Fatal("Failed to register 'room_type' validator",
			"error", err,
		)
	}

	log.Debug("Reservation validator initialized successfully", "room_types", inv.Types())

	return rv
}

func (v *ReservationValidator) validateRoomType(fl validator.FieldLevel) bool {
	return v.inventory.HasType(model.RoomType(fl.Field().String()))
}

func (v *ReservationValidator) Validate(req *model.ReservationRequest) error {
	var errs ValidationErrors

	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return err
		}
		errs = append(errs, v.translateValidationErrors(validationErrs)...)
	}

	if windowErrs := v.validateWindow(req.CheckIn, req.CheckOut); windowErrs != nil {
		errs = append(errs, windowErrs...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateWindow checks a stay on its own, for availability lookups.
func (v *ReservationValidator) ValidateWindow(checkIn, checkOut model.Date) error {
	if errs := v.validateWindow(checkIn, checkOut); errs != nil {
		return errs
	}
	return nil
}

func (v *ReservationValidator) validateWindow(checkIn, checkOut model.Date) ValidationErrors {
	var errs ValidationErrors

	if checkIn.IsZero() {
		errs = append(errs, ValidationError{Field: "check_in", Message: "check_in is required"})
	}
	if checkOut.IsZero() {
		errs = append(errs, ValidationError{Field: "check_out", Message: "check_out is required"})
	}
	if len(errs) > 0 {
		return errs
	}

	if !checkOut.After(checkIn) {
		return ValidationErrors{
			ValidationError{
				Field:   "check_out",
				Message: "check_out must be after check_in",
			},
		}
	}

	return nil
}

func (v *ReservationValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "room_type":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), v.roomTypeList())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}

func (v *ReservationValidator) roomTypeList() string {
	types := v.inventory.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
