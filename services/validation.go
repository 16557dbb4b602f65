package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"sharecalc/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// gte/lte compare +Inf like any other number
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f)
	})
	return v
}

// ValidationError lists every rejected field of an input
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Fields, "; ")
}

// ValidatePlanInput is the opt-in sanity check. The engine itself accepts
// anything and lets out-of-range values propagate.
func ValidatePlanInput(input models.PlanInput) error {
	return check(input)
}

func ValidateCondoInput(input models.CondoInput) error {
	return check(input)
}

func ValidateScenario(s models.Scenario) error {
	if err := check(s); err != nil {
		return err
	}
	return ValidatePlanInput(s.Input)
}

func check(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	ve := &ValidationError{Fields: make([]string, 0, len(verrs))}
	for _, fe := range verrs {
		if fe.Param() != "" {
			ve.Fields = append(ve.Fields, fmt.Sprintf("%s must satisfy %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			ve.Fields = append(ve.Fields, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return ve
}
