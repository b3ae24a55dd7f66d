package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// TagName matches gin's binding tag so one set of struct tags serves both
// gin binding and direct validation.
const TagName = "binding"

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// RegisterValidations installs the custom rules used by the request types.
// Call it on gin's validator engine too.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("isodate", isISODate); err != nil {
		return fmt.Errorf("register isodate validation: %w", err)
	}
	v.RegisterCustomTypeFunc(nullableIDValue, NullableID{})
	v.RegisterTagNameFunc(jsonFieldName)
	return nil
}

func isISODate(fl validator.FieldLevel) bool {
	_, err := domain.ParseDate(fl.Field().String())
	return err == nil
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.SetTagName(TagName)
		if err := RegisterValidations(validate); err != nil {
			panic(err)
		}
	})
	return validate
}

// Validate checks a request struct and returns a classified ValidationError.
func Validate(req any) error {
	if err := validatorInstance().Struct(req); err != nil {
		return ValidationError(err)
	}
	return nil
}

// ValidationError converts validator output into an AppError. A failed date
// rule is reported as INVALID_DATE.
func ValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.New(apperrors.ErrValidation, apperrors.ReasonValidation,
			fmt.Sprintf("Invalid request payload: %v", err))
	}

	reason := apperrors.ReasonValidation
	fields := make(map[string]string, len(fieldErrs))
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Tag() == "isodate" {
			reason = apperrors.ReasonInvalidDate
		}
		msg := describe(fe)
		fields[fieldPath(fe)] = msg
		msgs = append(msgs, fmt.Sprintf("%s %s", fieldPath(fe), msg))
	}
	return apperrors.New(apperrors.ErrValidation, reason, strings.Join(msgs, "; ")).
		WithDetail("fields", fields)
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "isodate":
		return "must be a YYYY-MM-DD date"
	case "oneof":
		return "must be one of " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "must have at least " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
