package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/BarenJ/AplikasiPanti/internal/apperr"

	"github.com/go-playground/validator/v10"
)

const (
	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02T15:04:05"
)

var validate = newValidator()

// layoutHint mengubah layout Go menjadi format yang dibaca pengguna, misal YYYY-MM-DD.
var layoutHint = strings.NewReplacer("2006", "YYYY", "01", "MM", "02", "DD", "15", "HH", "04", "mm", "05", "ss")

func newValidator() *validator.Validate {
	v := validator.New()
	// nama field di pesan error mengikuti tag json
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct mengembalikan ValidationError untuk field pertama yang gagal.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperr.Validation(fe.Field(), validationMessage(fe))
	}
	return apperr.Internal(err)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Field %s harus diisi", fe.Field())
	case "oneof":
		return fmt.Sprintf("Field %s harus salah satu dari: %s", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("Field %s harus berformat %s", fe.Field(), layoutHint.Replace(fe.Param()))
	case "min", "gte":
		return fmt.Sprintf("Field %s minimal %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("Field %s tidak valid", fe.Field())
	}
}
