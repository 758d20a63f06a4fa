package middleware

import (
	"errors"

	"github.com/Marga-Ghale/flatmeals-backend/internal/types"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by request models:
// diettype, isodate and hhmm.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("binding engine is not go-playground/validator")
	}

	tags := map[string]validator.Func{
		"diettype": func(fl validator.FieldLevel) bool {
			return types.IsValidDietType(fl.Field().String())
		},
		"isodate": func(fl validator.FieldLevel) bool {
			return types.IsISODate(fl.Field().String())
		},
		"hhmm": func(fl validator.FieldLevel) bool {
			return types.IsHHMM(fl.Field().String())
		},
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
