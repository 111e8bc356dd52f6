package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules добавляет доменные правила валидации.
func registerCustomRules(v *validator.Validate) {
	// currency_code: трехбуквенный код валюты в верхнем регистре
	_ = v.RegisterValidation("currency_code", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if code == "" {
			return true // пустое значение закрывается тегом required
		}
		if len(code) != 3 {
			return false
		}
		return code == strings.ToUpper(code)
	})
}
