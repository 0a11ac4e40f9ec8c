// Package validate decodes and validates request bodies and query strings in
// middleware, storing the typed result in the request context for handlers.
package validate

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/JaimeStill/vendor-products/pkg/handlers"
)

const defaultMaxBodyBytes = 1 << 20

// Validator wraps a go-playground validator configured to report JSON and
// query field names.
type Validator struct {
	v            *validator.Validate
	logger       *slog.Logger
	maxBodyBytes int64
	messages     map[string]string
}

// Option configures a Validator.
type Option func(*Validator)

// WithMaxBodyBytes caps the size of decoded JSON bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(v *Validator) {
		if n > 0 {
			v.maxBodyBytes = n
		}
	}
}

// WithPattern registers tag as a string validation that must match re.
// message completes "<field> ..." in error details.
func WithPattern(tag string, re *regexp.Regexp, message string) Option {
	return func(v *Validator) {
		err := v.v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		})
		if err != nil {
			panic(fmt.Sprintf("validate: register %q: %v", tag, err))
		}
		v.messages[tag] = message
	}
}

// New creates a Validator.
func New(logger *slog.Logger, opts ...Option) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)

	val := &Validator{
		v:            v,
		logger:       logger.With("system", "validate"),
		maxBodyBytes: defaultMaxBodyBytes,
		messages:     make(map[string]string),
	}
	for _, opt := range opts {
		opt(val)
	}
	return val
}

// Struct validates s and returns a *Error describing every failed field.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Error{Message: err.Error()}
	}

	out := &Error{Message: "invalid request"}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, handlers.FieldError{
			Field:   fieldPath(fe),
			Code:    fe.Tag(),
			Message: fmt.Sprintf("%s %s", fe.Field(), v.message(fe)),
		})
	}
	return out
}

// Error is a validation failure with per-field details.
type Error struct {
	Message string
	Fields  []handlers.FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(msgs, "; "))
}

// Details implements handlers.DetailedError.
func (e *Error) Details() []handlers.FieldError {
	return e.Fields
}

func invalid(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "query"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// fieldPath drops the root struct name from the namespace: "Body.options[0].title" -> "options[0].title".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func (v *Validator) message(fe validator.FieldError) string {
	if msg, ok := v.messages[fe.Tag()]; ok {
		return msg
	}
	return tagMessage(fe)
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "len":
		return fmt.Sprintf("must have length %s", fe.Param())
	case "lowercase":
		return "must be lowercase"
	case "url":
		return "must be a valid URL"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "excluded_with", "excluded_unless":
		return "is not allowed here"
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
