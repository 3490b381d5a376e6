// Package validate is the form layer that sits in front of the store.
//
// The store trusts its callers completely, so every record must pass
// Student before Add or Update is called. Rules live in the validate:"..."
// tags on types.Student; this package registers the custom tags those
// rules use and turns failures into sentences a user can act on.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-records/internal/types"
)

// Validator wraps a configured *validator.Validate.
// It is safe for concurrent use; build one at startup and share it.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the custom tags registered.
//
//	notblank: string is non-empty after trimming whitespace
//	course:   string is one of types.Courses
//	year:     string is one of types.Years
//
// Field names in errors come from the json tag, so messages read
// "firstName is required" rather than "FirstName is required".
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// RegisterValidation only fails on an empty or reserved tag name,
	// which would be a programming error here.
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "course", func(fl validator.FieldLevel) bool {
		return types.IsCourse(fl.Field().String())
	})
	mustRegister(v, "year", func(fl validator.FieldLevel) bool {
		return types.IsYear(fl.Field().String())
	})

	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validate: register %q: %v", tag, err))
	}
}

// FieldError is a single failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is every rule a record failed, in struct field order.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, ", ")
}

// Student checks s against its field rules. It returns nil or an Errors.
func (val *Validator) Student(s types.Student) error {
	return val.check(s)
}

// Form checks a submitted student. Beyond the Student rules it requires
// gpa to be present.
func (val *Validator) Form(f types.StudentForm) error {
	return val.check(f)
}

func (val *Validator) check(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate student: %w", err)
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

// message converts one validator.FieldError into a plain English sentence.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s is invalid", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD form", fe.Field())
	case "course":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(types.Courses, ", "))
	case "year":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(types.Years, ", "))
	case "gte", "lte":
		return fmt.Sprintf("%s must be a number between 0 and 4", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
