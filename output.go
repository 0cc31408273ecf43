package main

import (
	"fmt"
	"io"
)

// LabelsFormatter outputs one label per line.
type LabelsFormatter struct{}

// Format outputs the label universe.
func (f *LabelsFormatter) Format(w io.Writer, result Result, config *Config) error {
	labelsResult, ok := result.(LabelsResult)
	if !ok {
		return fmt.Errorf("LabelsFormatter expects LabelsResult, got %T", result)
	}

	for _, label := range labelsResult.Labels {
		fmt.Fprintln(w, label)
	}
	return nil
}

// FormatResult determines the appropriate formatter based on the result type and config.
func FormatResult(w io.Writer, result Result, config *Config) error {
	switch r := result.(type) {
	case LabelsResult:
		formatter := &LabelsFormatter{}
		return formatter.Format(w, result, config)
	case PRResult:
		var formatter Formatter
		if config.Detailed {
			formatter = &DetailedFormatter{}
		} else if config.Quiet {
			formatter = &QuietFormatter{}
		} else {
			formatter = &TabularFormatter{}
		}
		return formatter.Format(w, result, config)
	default:
		return fmt.Errorf("unknown result type: %T", r)
	}
}
