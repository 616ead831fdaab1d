package registration

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen11/consul-registrar/internal/domain"
)

// namePattern accepts names that start with a letter and contain only
// letters, digits, '-', '_' and '.'.
var namePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.-]*$`)

// validate is safe for concurrent use and caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("servicename", func(fl validator.FieldLevel) bool {
		return namePattern.MatchString(fl.Field().String())
	})

	// Report errors using configuration keys rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("field"); name != "" {
			return name
		}
		return f.Name
	})

	return v
}

// Validate checks the instance's identity fields. Every failure is a
// [domain.ConfigurationError] naming the offending field; multiple failures
// are joined.
func (i Instance) Validate() error {
	err := validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewConfigurationError("registration", "instance validation failed", err)
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, domain.NewConfigurationError(fe.Field(), reason(fe), nil))
	}
	return errors.Join(errs...)
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "servicename":
		return fmt.Sprintf("%q must start with a letter and contain only letters, digits, '-', '_' or '.'", fe.Value())
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte", "lte":
		return "must be between 0 and 65535"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
