package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate checks request DTOs before any service call. Field names in the
// reported details follow the json tags so clients can map them back to form
// inputs.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationDetails(err error) map[string]string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"body": "dados inválidos"}
	}

	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = validationMessage(fe)
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "min":
		return "abaixo do mínimo permitido (" + fe.Param() + ")"
	case "gt":
		return "deve ser maior que " + fe.Param()
	case "lte":
		return "deve ser menor ou igual a " + fe.Param()
	case "oneof":
		return "deve ser um de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "valor inválido"
	}
}
