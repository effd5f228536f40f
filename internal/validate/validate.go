// Package validate checks user-supplied records before they are persisted.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/verte-zerg/prepdesk/internal/model"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterStructValidation(attemptStructValidation, model.Attempt{})
	_ = validate.RegisterTranslation("ltefield", translator, noopRegisterFn, translateLteField)
}

func noopRegisterFn(ut.Translator) error {
	return nil
}

// translateLteField names the compared field by its JSON name.
func translateLteField(_ ut.Translator, fe validator.FieldError) string {
	return fmt.Sprintf("%s must be less than or equal to %s", fe.Field(), jsonName(fe.Param()))
}

func jsonName(goName string) string {
	r, size := utf8.DecodeRuneInString(goName)
	if r == utf8.RuneError {
		return goName
	}
	return string(unicode.ToLower(r)) + goName[size:]
}

// attemptStructValidation checks every subject and difficulty breakdown;
// map values are not reached by field tags.
func attemptStructValidation(sl validator.StructLevel) {
	a := sl.Current().Interface().(model.Attempt)
	reportBreakdowns(sl, "subjectWise", a.SubjectWise)
	reportBreakdowns(sl, "difficultyWise", a.DifficultyWise)
}

func reportBreakdowns(sl validator.StructLevel, field string, m map[string]model.Breakdown) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b := m[k]
		prefix := fmt.Sprintf("%s[%s].", field, k)
		if b.Total < 0 {
			sl.ReportError(b.Total, prefix+"total", "Total", "gte", "0")
		}
		switch {
		case b.Correct < 0:
			sl.ReportError(b.Correct, prefix+"correct", "Correct", "gte", "0")
		case b.Correct > b.Total:
			sl.ReportError(b.Correct, prefix+"correct", "Correct", "ltefield", "Total")
		}
	}
}

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string
	Message string
}

// Error lists every invalid field of a record.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   strings.TrimPrefix(fe.Namespace(), typeName(s)+"."),
			Message: fe.Translate(translator),
		})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return &Error{Fields: fields}
}

func typeName(s any) string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
