package plot

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration = errors.New("invalid chart configuration")
	ErrOption        = errors.New("invalid option")
)

// ConfigurationError reports a dataset whose category column does not have
// the number of distinct values a chart needs
type ConfigurationError struct {
	Column string
	Found  []string
	Want   int
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("column %q must have exactly %d distinct values, found %d: [%s]",
		e.Column, e.Want, len(e.Found), strings.Join(e.Found, ", "))
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// OptionError reports an option value that fails validation
type OptionError struct {
	Option string
	Value  interface{}
	Reason string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("invalid option %s=%v: %s", e.Option, e.Value, e.Reason)
}

func (e *OptionError) Is(target error) bool { return target == ErrOption }
