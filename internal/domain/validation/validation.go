// Package validation collects field-scoped input errors. A non-empty set
// blocks the write it guards.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"jobswipe/internal/pkg/optional"

	"github.com/go-playground/validator/v10"
)

type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// As extracts the field map from any error chain holding an *Error.
func As(err error) (map[string]string, bool) {
	var ve *Error
	if errors.As(err, &ve) && ve != nil {
		return ve.Fields, true
	}
	return nil, false
}

// Errors keeps the first message per field.
type Errors map[string]string

func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; ok {
		return
	}
	e[field] = msg
}

func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return &Error{Fields: map[string]string(e)}
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterCustomTypeFunc(optionalValue,
		optional.Value[int]{}, optional.Value[string]{},
	)
	// httpurl accepts an empty string, which clears a stored link.
	_ = validate.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		return s == "" || validate.Var(s, "http_url") == nil
	})
}

// optionalValue exposes the wrapped value; absent and null fields validate
// as missing, so omitempty skips them.
func optionalValue(v reflect.Value) any {
	switch o := v.Interface().(type) {
	case optional.Value[int]:
		if o.Set && !o.Null {
			return o.V
		}
	case optional.Value[string]:
		if o.Set && !o.Null {
			return o.V
		}
	}
	return nil
}

// RegisterStructRule adds a cross-field rule for the given struct types.
// Call it from package init only.
func RegisterStructRule(fn validator.StructLevelFunc, types ...any) {
	validate.RegisterStructValidation(fn, types...)
}

// Struct checks the `validate` tags of s. Failures come back as *Error keyed
// by json field name; dive failures are reported on the collection field.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := Errors{}
	for _, fe := range fieldErrs {
		name, item := fieldName(fe)
		errs.Add(name, message(fe, item))
	}
	return errs.Err()
}

// StructValidator plugs Struct into fiber's body binding.
type StructValidator struct{}

func (StructValidator) Validate(out any) error {
	return Struct(out)
}

func fieldName(fe validator.FieldError) (string, bool) {
	name := fe.Field()
	if i := strings.IndexByte(name, '['); i >= 0 {
		return name[:i], true
	}
	return name, false
}

func message(fe validator.FieldError, item bool) string {
	must := "must"
	if item {
		must = "items must"
	}
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		if item {
			return "must not contain empty items"
		}
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			if param == "1" {
				return "is required"
			}
			return fmt.Sprintf("%s be at least %s characters", must, param)
		}
		return fmt.Sprintf("%s be at least %s", must, param)
	case "max":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s be at most %s characters", must, param)
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("must contain at most %s items", param)
		}
		return fmt.Sprintf("%s be at most %s", must, param)
	case "httpurl", "http_url":
		return "must be a valid http(s) URL"
	case "uuid", "uuid4":
		return "must be a valid id"
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(param), ", ")
	case "gtefield":
		return "must be greater than or equal to " + param
	}
	return "is invalid"
}

// Ceilings shared by the validate tags across the domain.
const (
	MaxURLLen    = 2048
	MaxSalary    = 100_000_000
	MaxTagCount  = 30
	MaxTagLength = 50
)

// NormalizeTags trims, drops empties and de-duplicates. Tags compare
// exactly, the way the store's array overlap does.
func NormalizeTags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
