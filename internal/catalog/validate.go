package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/planner"
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		_, ok := planner.ParseRole(fl.Field().String())
		return ok
	})
	// Use JSON field names for validation error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError turns the first validator failure into the planner's
// error type so callers see one taxonomy.
func validationError(name string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &planner.ValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("ingredient %q failed %q check (value %v)", name, fe.Tag(), fe.Value()),
		}
	}
	return fmt.Errorf("validating ingredient %q: %w", name, err)
}
