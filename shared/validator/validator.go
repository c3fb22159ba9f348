package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"schedly/shared/constant"
	"schedly/shared/failure"
	"schedly/shared/timeslot"
	"time"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

// wallclock validates zero-padded "HH:MM" time-of-day strings.
func registerWallClockValidation(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := timeslot.Minutes(str)

	return err == nil
}

// calendardate validates "YYYY-MM-DD" calendar dates.
func registerCalendarDateValidation(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse(constant.CalendarDayFormat, str)

	return err == nil
}

// iana_tz validates IANA timezone identifiers against the tz database.
func registerTimezoneValidation(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok || str == "" {
		return false
	}

	_, err := time.LoadLocation(str)

	return err == nil
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	for tag, fn := range map[string]val.Func{
		"wallclock":    registerWallClockValidation,
		"calendardate": registerCalendarDateValidation,
		"iana_tz":      registerTimezoneValidation,
	} {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
