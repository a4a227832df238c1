package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("widget.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "widget.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Equal(t, "parse error: widget.yaml:12: unexpected token", err.Error())
}

func TestParseErrorWithoutLine(t *testing.T) {
	t.Parallel()

	err := NewParseError("widget.yaml", 0, stdErrors.New("no such file"))
	require.Equal(t, "parse error: widget.yaml: no such file", err.Error())
}

func TestValidationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("color_switch", "must be between 0 and 100", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "color_switch", validationErr.Field)
	require.Equal(t, "validation error: color_switch: must be between 0 and 100", err.Error())

	require.Equal(t, "validation error: bad", NewValidationError("", "bad", nil).Error())
}

func TestConfigurationErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewConfigurationError("on_click.workflow", "on click microflow is required")

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "on_click.workflow", cfgErr.Field)
	require.Equal(t, "Error in progress bar configuration: on click microflow is required", err.Error())
}

func TestActionInvocationErrorMessages(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("exit status 1")

	t.Run("workflow", func(t *testing.T) {
		t.Parallel()
		err := NewActionInvocationError(ActionWorkflow, "Refresh", underlying)
		require.Equal(t, "Error while executing microflow Refresh: exit status 1", err.Error())
		require.True(t, stdErrors.Is(err, underlying))
	})

	t.Run("page", func(t *testing.T) {
		t.Parallel()
		err := NewActionInvocationError(ActionPage, "Detail.xml", underlying)
		require.Equal(t, "Error while opening page Detail.xml: exit status 1", err.Error())
	})

	t.Run("missing reason", func(t *testing.T) {
		t.Parallel()
		err := NewActionInvocationError(ActionWorkflow, "Refresh", nil)
		require.Contains(t, err.Error(), "unknown error")
	})
}

func TestNilReceiversAreSafe(t *testing.T) {
	t.Parallel()

	var parseErr *ParseError
	var validationErr *ValidationError
	var cfgErr *ConfigurationError
	var actionErr *ActionInvocationError

	require.Empty(t, parseErr.Error())
	require.Nil(t, parseErr.Unwrap())
	require.Empty(t, validationErr.Error())
	require.Empty(t, cfgErr.Error())
	require.Empty(t, actionErr.Error())
	require.Nil(t, actionErr.Unwrap())
}
