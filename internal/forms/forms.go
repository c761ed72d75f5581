// Package forms binds and validates submitted form fields before they reach
// the services. Field errors are keyed by the form field name.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Errors maps a form field name to its message. It is the validation error
// returned to handlers, which re-render the form with it.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Add records msg for field unless the field already has an error.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Cleaner is implemented by forms with checks or coercions beyond their tags.
type Cleaner interface {
	Clean(errs Errors)
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(formFieldName)
	}
}

// Bind fills form from the request (query string on GET, body on POST) and
// validates it. Submitted values stay on form even when validation fails, so
// the page can be shown again with them. A nil result means the form is valid.
func Bind(c *gin.Context, form interface{}) Errors {
	errs := Errors{}

	if err := c.ShouldBind(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			errs.Add("form", "The submitted form could not be read.")
			return errs
		}
		for _, fe := range verrs {
			errs.Add(fe.Field(), message(fe))
		}
	}

	if cleaner, ok := form.(Cleaner); ok {
		cleaner.Clean(errs)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func formFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
	if name == "" || name == "-" {
		return strings.ToLower(field.Name)
	}
	return name
}

func message(fe validator.FieldError) string {
	label := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long.", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "numeric":
		return fmt.Sprintf("%s must be a number.", label)
	case "number":
		return fmt.Sprintf("%s must be a whole number.", label)
	case "url":
		return fmt.Sprintf("%s must be a valid URL.", label)
	}
	return fmt.Sprintf("%s is invalid.", label)
}

func humanize(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w == "id" {
			words[i] = ""
			continue
		}
		if i == 0 && w != "" {
			w = strings.ToUpper(w[:1]) + w[1:]
		}
		words[i] = w
	}
	return strings.TrimSpace(strings.Join(words, " "))
}
