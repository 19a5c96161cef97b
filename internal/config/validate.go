package config

import (
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/hailam/reversi/internal/eval"
)

// validate is the validator instance for configuration structs.
// Initialized in init() with custom validators.
var validate *validator.Validate

func init() {
	validate = validator.New()

	_ = validate.RegisterValidation("even", validateEven)
	_ = validate.RegisterValidation("evaluator", validateEvaluator)
}

// validateEven accepts even integers.
func validateEven(fl validator.FieldLevel) bool {
	return fl.Field().Int()%2 == 0
}

// validateEvaluator accepts the names of known evaluators.
func validateEvaluator(fl validator.FieldLevel) bool {
	return slices.Contains(eval.Names(), fl.Field().String())
}
