package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/RecipeBOM_Go/internal/domain"
)

// Validator checks request structs against their validate tags
type Validator struct {
	validate *validator.Validate
}

var (
	validatorOnce sync.Once
	validate      *Validator
)

// InitValidator builds the shared validator. Field errors are reported under
// the JSON name the client sent.
func InitValidator() {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("recipekind", func(fl validator.FieldLevel) bool {
			return domain.ItemKind(fl.Field().String()).IsRecipe()
		})
		validate = &Validator{validate: v}
	})
}

// GetValidator returns the shared validator, building it on first use
func GetValidator() *Validator {
	InitValidator()
	return validate
}

// ValidateStruct runs the tag checks on s
func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return strings.ToLower(f.Name)
	}
	return name
}

// fieldMessages covers tags whose message does not need the tag parameter
var fieldMessages = map[string]string{
	"required":    "This field is required",
	"recipekind":  "Must be material or product",
	"excludesall": "Contains invalid characters",
}

// paramMessages take the tag parameter as their only argument
var paramMessages = map[string]string{
	"oneof": "Must be one of: %s",
	"gt":    "Must be greater than %s",
	"gte":   "Must be at least %s",
	"min":   "Must be at least %s",
	"max":   "Must be at most %s",
}

// FormatValidationError turns validator errors into a field -> message map
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"error": ErrMsgInvalidRequestFormat}
	}

	out := make(map[string]string, len(verrs))
	for _, e := range verrs {
		out[e.Field()] = fieldMessage(e)
	}
	return out
}

func fieldMessage(e validator.FieldError) string {
	if msg, ok := fieldMessages[e.Tag()]; ok {
		return msg
	}
	if format, ok := paramMessages[e.Tag()]; ok {
		return fmt.Sprintf(format, e.Param())
	}
	if e.Tag() == "required_without" {
		return fmt.Sprintf("Required when %s is not set", strings.ToLower(e.Param()))
	}
	return "Invalid value"
}
