package validation

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterBindingRules registers the custom rules referenced by DTO
// binding tags. Call once at startup before the router is built.
func RegisterBindingRules() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return SlugPattern(fl.Field().String())
	})
	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return UsernamePattern(fl.Field().String())
	})
}
