package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator checks request bodies against their `validate` struct tags
type Validator struct {
	validate *govalidator.Validate
	trans    ut.Translator
}

// NewValidator creates a validator whose messages name fields by their JSON tag
func NewValidator() *Validator {
	v := govalidator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		// untranslated messages still carry the field and tag
		trans = nil
	}

	return &Validator{validate: v, trans: trans}
}

// Validate returns a map of field namespace to message, or nil when dst is valid.
// Errors that are not field errors are reported under "detail".
func (v *Validator) Validate(dst interface{}) map[string]string {
	err := v.validate.Struct(dst)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fieldPath(fe)] = v.translate(fe)
		}
		return fields
	}

	fields["detail"] = err.Error()
	return fields
}

func (v *Validator) translate(fe govalidator.FieldError) string {
	if v.trans == nil {
		return fe.Error()
	}
	return fe.Translate(v.trans)
}

// fieldPath drops the root struct name, e.g. QuizRequest.quiz_category.id -> quiz_category.id
func fieldPath(fe govalidator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
