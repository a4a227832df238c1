package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	pberrors "github.com/alexisbeaulieu97/progressbar/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	attributePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_./]*$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("bootstrap_style", func(fl validator.FieldLevel) bool {
			return BootstrapStyle(fl.Field().String()).Valid()
		})

		_ = v.RegisterValidation("attribute_name", func(fl validator.FieldLevel) bool {
			return attributePattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// ValidateWidget performs structural validation of a widget document.
// Incomplete click actions are not rejected here; they surface through
// ValidateClickAction as a configuration banner.
func ValidateWidget(w *Widget) error {
	if w == nil {
		return pberrors.NewValidationError("widget", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(w); err != nil {
		return convertValidationError(err)
	}

	if w.OnClick.Action == ActionWorkflow && w.OnClick.Workflow != "" && len(w.Workflows) > 0 {
		if _, ok := w.Workflows[w.OnClick.Workflow]; !ok {
			return pberrors.NewValidationError("on_click.workflow", fmt.Sprintf("references unknown workflow %q", w.OnClick.Workflow), nil)
		}
	}

	return nil
}

// ValidateClickAction reports an incomplete click action as a
// ConfigurationError, or nil when the action can be dispatched.
func ValidateClickAction(w Widget) error {
	switch w.OnClick.Action {
	case ActionWorkflow:
		if strings.TrimSpace(w.OnClick.Workflow) == "" {
			return pberrors.NewConfigurationError("on_click.workflow", "on click microflow is required")
		}
	case ActionPage:
		if strings.TrimSpace(w.OnClick.Page) == "" {
			return pberrors.NewConfigurationError("on_click.page", "on click page is required")
		}
	}
	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := fieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		if ve.Param() != "" {
			msg = fmt.Sprintf("%s (%s)", msg, ve.Param())
		}
		return pberrors.NewValidationError(field, msg, err)
	}

	return pberrors.NewValidationError("widget", err.Error(), err)
}

// fieldName drops the root struct from the namespace, leaving the YAML path.
func fieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}
