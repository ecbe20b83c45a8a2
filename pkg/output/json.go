package output

import (
	"encoding/json"
	"time"

	"github.com/mevatron/gotqdm/pkg/logger"
)

// reportOutput is the document written for JSON and YAML
type reportOutput struct {
	Estimator  string    `json:"estimator" yaml:"estimator"`
	Runs       []Run     `json:"runs" yaml:"runs"`
	Statistics *stats    `json:"statistics,omitempty" yaml:"statistics,omitempty"`
	Generated  time.Time `json:"generated" yaml:"generated"`
}

func (f *formatter) document(report *Report) *reportOutput {
	doc := &reportOutput{
		Estimator: report.Estimator,
		Runs:      report.Runs,
		Generated: f.now(),
	}
	if f.config.WithStats {
		f.log.Debug("Adding statistics to output")
		doc.Statistics = f.calculateStats(report)
	}
	return doc
}

func (f *formatter) formatJSON(report *Report) (string, error) {
	f.log.Debug("Formatting JSON output")

	bytes, err := json.MarshalIndent(f.document(report), "", "  ")
	if err != nil {
		f.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to marshal JSON")
		return "", err
	}

	return string(bytes), nil
}
