// Package validation holds the request rule sets and turns the first
// violation into a client-facing message.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/go-playground/validator/v10"
)

// Error is a single rule violation. It matches common.ErrorValidation with
// errors.Is.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return common.ErrorValidation }

// NewError builds an Error that is not tied to a struct field.
func NewError(message string) *Error {
	return &Error{Message: message}
}

// overrider lets a rule set replace the default message for "field.tag".
type overrider interface {
	messages() map[string]string
}

// precheck runs before the tag rules.
type precheck interface {
	precheck() error
}

type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the custom password tags registered and field
// names taken from json tags.
func New() *Validator {
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

	for tag, fn := range passwordRules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s: %v", tag, err))
		}
	}

	return &Validator{v: v}
}

var std = New()

// Validate checks req against the default Validator.
func Validate(req any) error {
	return std.Validate(req)
}

// Validate returns nil or the first violation as *Error.
func (v *Validator) Validate(req any) error {
	if p, ok := req.(precheck); ok {
		if err := p.precheck(); err != nil {
			return err
		}
	}

	err := v.v.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	msg := message(fe)
	if o, ok := req.(overrider); ok {
		if m, ok := o.messages()[fe.Field()+"."+fe.Tag()]; ok {
			msg = m
		}
	}
	return &Error{Field: fe.Field(), Message: msg}
}

func message(fe validator.FieldError) string {
	label := fmt.Sprintf("%q", fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return label + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s length must be at least %s characters long", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s length must be less than or equal to %s characters long", label, fe.Param())
	case "haslower":
		return label + " should contain at least 1 lowercase character"
	case "hasupper":
		return label + " should contain at least 1 uppercase character"
	case "hasdigit":
		return label + " should contain at least 1 numeric character"
	case "hasspecial":
		return label + " should contain at least 1 special character"
	case "nowhitespace":
		return label + " should not contain white spaces"
	case "latin":
		return label + " should contain only latin characters"
	case "notcommon":
		return label + " must not include a common sequence"
	default:
		return label + " is invalid"
	}
}
