// Package validator wraps go-playground/validator with JSON field names and
// Spanish messages keyed by field.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		// decimals are validated as their float value so gte/lte apply
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})

		instance = v
	})
	return instance
}

// Struct validates s and returns the failures keyed by JSON field name.
// It returns nil when s is valid.
func Struct(s interface{}) map[string]string {
	err := get().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	numeric := fe.Kind() == reflect.Float64 || fe.Kind() == reflect.Int || fe.Kind() == reflect.Int64

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("El campo %s es obligatorio", field)
	case "email":
		return fmt.Sprintf("El campo %s debe ser un email válido", field)
	case "min":
		if numeric {
			return fmt.Sprintf("El campo %s debe ser mayor o igual a %s", field, fe.Param())
		}
		return fmt.Sprintf("El campo %s debe tener al menos %s caracteres", field, fe.Param())
	case "max":
		if numeric {
			return fmt.Sprintf("El campo %s no puede ser mayor a %s", field, fe.Param())
		}
		return fmt.Sprintf("El campo %s no puede exceder %s caracteres", field, fe.Param())
	case "gte":
		return fmt.Sprintf("El campo %s debe ser mayor o igual a %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("El campo %s debe ser mayor a %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("El campo %s debe ser uno de: %s", field, fe.Param())
	case "url":
		return fmt.Sprintf("El campo %s debe ser una URL válida", field)
	}
	return fmt.Sprintf("El campo %s no es válido", field)
}
