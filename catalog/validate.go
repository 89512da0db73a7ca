package catalog

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	govalidator "github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *govalidator.Validate
)

func validator() *govalidator.Validate {
	validateOnce.Do(func() {
		validate = govalidator.New(govalidator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.Split(f.Tag.Get("json"), ",")[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("notfuture", validateNotFuture)
	})
	return validate
}

// notfuture rejects years after the current one.
func validateNotFuture(fl govalidator.FieldLevel) bool {
	return fl.Field().Int() <= int64(time.Now().Year())
}

// Validate checks the declared bounds of every field.
func (in MovieInput) Validate() error {
	err := validator().Struct(in)
	if err == nil {
		return nil
	}
	errs, ok := err.(govalidator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		fields[e.Field()] = errorMsgForField(e)
	}
	return &ValidationError{Fields: fields}
}

func errorMsgForField(err govalidator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "gte":
		return fmt.Sprintf("Value should be greater than or equal to %s", err.Param())
	case "lte":
		return fmt.Sprintf("Value should be less than or equal to %s", err.Param())
	case "notfuture":
		return fmt.Sprintf("Value should not be after %d", time.Now().Year())
	default:
		return "This field is invalid"
	}
}
