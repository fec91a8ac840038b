package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/DRSN-tech/autovarka/internal/locale"
	"github.com/DRSN-tech/autovarka/pkg/e"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator проверяет входные структуры и сообщает имя поля в нотации JSON:
// customer.phone, items[1].quantity.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	// decimal.Decimal сравнивается как число: gte=0 и т.п.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("locale", func(fl validator.FieldLevel) bool {
		return locale.IsSupported(fl.Field().String())
	})

	return &Validator{v: v}
}

// Struct возвращает *e.ValidationError для первого некорректного поля.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return e.Wrap("Validator.Struct", err)
	}

	fe := fieldErrs[0]
	return e.NewValidationError(fieldPath(fe.Namespace()), reason(fe))
}

// Var проверяет одиночное значение и называет поле field.
func (v *Validator) Var(field string, value any, tag string) error {
	err := v.v.Var(value, tag)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return e.Wrap("Validator.Var", err)
	}

	return e.NewValidationError(field, reason(fieldErrs[0]))
}

// fieldPath отрезает имя корневой структуры: CreateOrderReq.customer.phone → customer.phone.
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}

	return namespace
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "locale":
		return "unsupported locale"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s element(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	default:
		return "is invalid"
	}
}
