package validator

import (
	"fmt"

	"github.com/circleops/salesops-backend/pkg/circle"
	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
)

// RegisterBindings adds the `circle`, `persno` and `mobile` tags to gin's
// request binding validator so DTOs can declare them in `binding:"..."`.
func RegisterBindings() error {
	engine, ok := binding.Validator.Engine().(*playground.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	return Register(engine)
}

// Register adds the custom tags to an existing validator instance
func Register(v *playground.Validate) error {
	phones := NewPhoneValidator()

	rules := map[string]playground.Func{
		"circle": func(fl playground.FieldLevel) bool {
			return circle.IsValid(fl.Field().String())
		},
		"persno": func(fl playground.FieldLevel) bool {
			return IsValidPersNo(fl.Field().String())
		},
		"mobile": func(fl playground.FieldLevel) bool {
			return phones.IsValid(fl.Field().String())
		},
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %q validation: %w", tag, err)
		}
	}
	return nil
}
