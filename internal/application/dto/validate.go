package dto

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/erp-kardex/internal/domain"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Formatos de fecha aceptados en las peticiones.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// Reporta los campos con su nombre JSON.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := ParseDate(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// Validate revisa los tags `validate` de v y devuelve *domain.ValidationError con
// los campos inválidos.
func Validate(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fieldPath(fe))
		}
		return domain.NewValidationError(fields...)
	}
	return domain.ErrInvalidInput
}

// fieldPath quita el nombre del struct raíz: "CreateSalesOrderRequest.orderItems[0].quantity" → "orderItems[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// ParseDate acepta YYYY-MM-DD o RFC3339.
func ParseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
