package handler

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var decimalValidations = map[string]validator.Func{
	"decimal_gt": decimalCompare(func(value, limit decimal.Decimal) bool {
		return value.GreaterThan(limit)
	}),
	"decimal_gte": decimalCompare(func(value, limit decimal.Decimal) bool {
		return value.GreaterThanOrEqual(limit)
	}),
}

// newValidator returns a validator that understands decimal amounts.
// It panics if a tag cannot be registered.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	if err := registerValidations(v, decimalValidations); err != nil {
		panic(err)
	}

	return v
}

func registerValidations(v *validator.Validate, validations map[string]validator.Func) error {
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("registering %q validation: %w", tag, err)
		}
	}
	return nil
}

func decimalCompare(cmp func(value, limit decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		limit, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return cmp(value, limit)
	}
}
