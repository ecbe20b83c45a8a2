/*
Package output renders benchmark reports as a text table, JSON or YAML. It
supports colored headers and a summary section.

Basic usage:

	formatter := output.NewFormatter(output.Config{
		Format:     output.FormatText,
		WithStats:  true,
		WithColors: true,
	}, log)

	result, err := formatter.Format(report)
*/
package output

import (
	"errors"
	"fmt"
	"time"

	"github.com/mevatron/gotqdm/pkg/logger"
)

// Format represents the output format type
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user supplied format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Config holds formatter configuration
type Config struct {
	Format     Format
	WithStats  bool
	WithColors bool
}

// Run is the measurement of one benchmarked loop
type Run struct {
	Theme       string        `json:"theme" yaml:"theme"`
	Items       int           `json:"items" yaml:"items"`
	Ticks       int           `json:"ticks" yaml:"ticks"`
	FinalPeriod int           `json:"finalPeriod" yaml:"final_period"`
	Smoothing   int           `json:"smoothing" yaml:"smoothing"`
	Rate        float64       `json:"rate" yaml:"rate"`
	Elapsed     time.Duration `json:"elapsedNs" yaml:"elapsed"`
	PerCall     time.Duration `json:"perCallNs" yaml:"per_call"`
}

// Report groups the runs of one bench invocation
type Report struct {
	Estimator string
	Runs      []Run
}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(*Report) (string, error)
}

// formatter implements the Formatter interface
type formatter struct {
	config Config
	log    logger.Logger
	now    func() time.Time
}

// NewFormatter creates a new formatter instance
func NewFormatter(config Config, log logger.Logger) Formatter {
	if log == nil {
		log = logger.Nop()
	}
	return &formatter{
		config: config,
		log:    log,
		now:    time.Now,
	}
}

// Format formats the report according to the configured format
func (f *formatter) Format(report *Report) (string, error) {
	if report == nil {
		msg := "nil report provided for formatting"
		f.log.Error(msg)
		return "", errors.New(msg)
	}

	f.log.WithFields(logger.Fields{
		"format":     f.config.Format,
		"withStats":  f.config.WithStats,
		"withColors": f.config.WithColors,
		"runs":       len(report.Runs),
	}).Debug("Starting format operation")

	switch f.config.Format {
	case FormatText, "":
		return f.formatText(report)
	case FormatJSON:
		return f.formatJSON(report)
	case FormatYAML:
		return f.formatYAML(report)
	default:
		msg := fmt.Sprintf("unsupported format: %s", f.config.Format)
		f.log.Error(msg)
		return "", errors.New(msg)
	}
}
