package config

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	pberrors "github.com/alexisbeaulieu97/progressbar/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseWidget loads a widget document from disk, validates it, and returns the resulting model.
func ParseWidget(path string) (*Widget, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pberrors.NewParseError(path, 0, err)
	}
	return ParseWidgetBytes(path, data)
}

// ParseWidgetBytes decodes a widget document already in memory. The name
// is only used in error messages. An empty document yields the defaults.
func ParseWidgetBytes(name string, data []byte) (*Widget, error) {
	w := DefaultWidget()
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &w); err != nil {
			return nil, pberrors.NewParseError(name, extractLine(err), err)
		}
	}

	if err := ValidateWidget(&w); err != nil {
		return nil, err
	}

	return &w, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
