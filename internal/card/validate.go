package card

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("cardtype", validateCardType)
		validate = v
	})
	return validate
}

// validateCardType accepts the canonical types of the kind named by the tag
// parameter, ignoring case.
func validateCardType(fl validator.FieldLevel) bool {
	_, ok := CanonicalType(Kind(fl.Param()), fl.Field().String())
	return ok
}

// ValidationError lists the invalid fields of a card.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return "invalid card: " + strings.Join(parts, "; ")
}

// Validate checks an *Adversary or *Environment against its field rules.
func Validate(c any) error {
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = describe(fe)
	}
	return &ValidationError{Fields: fields}
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return strings.ToLower(ns)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "gtefield":
		return "must not be lower than " + strings.ToLower(fe.Param())
	case "cardtype":
		return fmt.Sprintf(
			"%q is not a known %s type (%s)",
			fe.Value(),
			fe.Param(),
			strings.Join(TypesFor(Kind(fe.Param())), ", "),
		)
	default:
		return "is invalid"
	}
}
