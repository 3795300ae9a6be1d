package config

import (
	"fmt"

	"go.uber.org/multierr"
)

// ConfigError describes one defect in a configuration document. Path
// locates the offending entry in dotted form, such as
// "handlers.console.level". Validation collects every defect it finds
// and combines them into a single error; errors.As recovers the
// individual entries.
type ConfigError struct {
	Path   string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// defectList accumulates configuration defects during validation.
type defectList struct {
	errs []error
}

func (d *defectList) add(path, format string, args ...interface{}) {
	d.errs = append(d.errs, &ConfigError{Path: path, Reason: fmt.Sprintf(format, args...)})
}

// err combines the collected defects, nil when there are none.
func (d *defectList) err() error {
	return multierr.Combine(d.errs...)
}

// Defects unpacks a load error into its individual configuration
// defects. Errors that did not come from validation are returned
// unchanged as a single-element slice.
func Defects(err error) []error {
	if err == nil {
		return nil
	}
	return multierr.Errors(err)
}
