package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// accountCodePattern matches numeric chart-of-accounts codes like "1100".
var accountCodePattern = regexp.MustCompile(`^[0-9]{3,6}$`)

// registerCustomValidators wires custom binding tags into gin's validator.
// Must run before any request binding uses the tags.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("accountcode", func(fl validator.FieldLevel) bool {
			return accountCodePattern.MatchString(fl.Field().String())
		})
	}
}
