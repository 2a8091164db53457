package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate runs struct-tag validation and returns a field -> failed rule
// map, or nil when the value passes.
func Validate(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fields[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return fields
}
