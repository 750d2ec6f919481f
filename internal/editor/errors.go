// Package editor provides the per-section editors that mutate the shared résumé store.
package editor

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one failed field check
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists the field errors of one section
type ValidationError struct {
	Section string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return fmt.Sprintf("%s: %s", e.Section, strings.Join(msgs, "; "))
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// IndexError reports an entry index outside the section
type IndexError struct {
	Section string
	Index   int
	Len     int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0,%d)", e.Section, e.Index, e.Len)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// messages maps "field.tag" to the message shown for that failure
type messages map[string]string

func checkStruct(section string, v any, msgs messages) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Section: section}
	for _, fe := range verrs {
		msg, ok := msgs[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s is %s", fe.Field(), fe.Tag())
		}
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}
