package models

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorKind classifies a field-level validation failure.
type ErrorKind string

const (
	LengthError   ErrorKind = "LengthError"
	FormatError   ErrorKind = "FormatError"
	RequiredError ErrorKind = "RequiredError"
	EnumError     ErrorKind = "EnumError"
	InvalidError  ErrorKind = "InvalidError"
)

type FieldError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// FieldErrors maps a json field name to its first violation.
type FieldErrors map[string]FieldError

type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	msgs := make([]string, 0, len(names))
	for _, name := range names {
		msgs = append(msgs, e.Fields[name].Message)
	}
	return strings.Join(msgs, "; ")
}

type StructValidator struct {
	Validator *validator.Validate
}

// NewStructValidator returns a StructValidator backed by a fresh validator.
func NewStructValidator() *StructValidator {
	return &StructValidator{Validator: validator.New()}
}

// Validate checks out against its validate tags. Failures are returned as
// *ValidationError keyed by json field name.
func (v *StructValidator) Validate(out any) error {
	err := v.Validator.Struct(out)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	reflected := reflect.TypeOf(out)
	if reflected.Kind() == reflect.Ptr {
		reflected = reflected.Elem()
	}

	fields := FieldErrors{}
	for _, fe := range verrs {
		field, _ := reflected.FieldByName(fe.StructField())
		jsonTag := strings.Split(field.Tag.Get("json"), ",")[0]
		if jsonTag == "" {
			jsonTag = fe.Field()
		}
		if _, seen := fields[jsonTag]; seen {
			continue
		}
		fields[jsonTag] = describe(jsonTag, fe)
	}

	return &ValidationError{Fields: fields}
}

func describe(jsonTag string, fe validator.FieldError) FieldError {
	label := strings.ReplaceAll(jsonTag, "_", " ")

	switch fe.Tag() {
	case "required":
		return FieldError{Kind: RequiredError, Message: fmt.Sprintf("%s is required", label)}
	case "min":
		// A too-short required text field is reported the same way as a missing one.
		return FieldError{Kind: RequiredError, Message: fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())}
	case "len":
		return FieldError{Kind: LengthError, Message: fmt.Sprintf("%s must be exactly %s characters", label, fe.Param())}
	case "number":
		return FieldError{Kind: FormatError, Message: fmt.Sprintf("%s must contain only digits", label)}
	case "email":
		return FieldError{Kind: FormatError, Message: "invalid email format"}
	case "oneof":
		options := strings.ReplaceAll(fe.Param(), " ", ", ")
		return FieldError{Kind: EnumError, Message: fmt.Sprintf("%s must be one of: %s", label, options)}
	default:
		return FieldError{Kind: InvalidError, Message: fmt.Sprintf("invalid value for field: %s", label)}
	}
}
