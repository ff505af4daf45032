package handlers

import (
	"errors"
	"reflect"
	"strings"

	"kriya/internal/services"
	"kriya/internal/validate"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = val.RegisterValidation("resid", func(fl validator.FieldLevel) bool {
		_, ok := validate.ID(fl.Field().String())
		return ok
	})
	return val
}

var errBadBody = &services.ValidationError{Fields: map[string]string{"body": "malformed request body"}}

// bind decodes the request body into dst and checks its validate tags.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return errBadBody
	}
	err := v.Struct(dst)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	fields := make(map[string]string, len(ves))
	for _, fe := range ves {
		fields[fe.Field()] = message(fe)
	}
	return &services.ValidationError{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "resid":
		return "is not a valid id"
	case "alphanum":
		return "must contain only letters and digits"
	}
	return "is invalid"
}
