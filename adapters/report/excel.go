package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"montyhall/internal/analysis"
	"montyhall/internal/errors"
	"montyhall/ports"
)

// ExcelReporter exports a run as an xlsx workbook with a summary sheet and
// the full per-trial result sheet
type ExcelReporter struct{}

// NewExcelReporter creates an Excel workbook reporter
func NewExcelReporter() *ExcelReporter {
	return &ExcelReporter{}
}

// Report builds the workbook and returns its serialized bytes
func (r *ExcelReporter) Report(run ports.StoredRun) ([]byte, error) {
	summary, err := analysis.Summarize(run.Aggregate)
	if err != nil {
		return nil, errors.ReportingFailed("excel", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return nil, errors.ReportingFailed("excel", err)
	}
	if err := r.writeSummary(f, run, summary); err != nil {
		return nil, errors.ReportingFailed("excel", err)
	}
	if err := r.writeResults(f, run); err != nil {
		return nil, errors.ReportingFailed("excel", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.ReportingFailed("excel", err)
	}
	return buf.Bytes(), nil
}

func (r *ExcelReporter) writeSummary(f *excelize.File, run ports.StoredRun, summary analysis.RunSummary) error {
	headers := []interface{}{"Strategy", "Wins", "Trials", "Win Rate", "CI Low", "CI High", "Expected", "Z Score", "Converged"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue("Summary", cell, h); err != nil {
			return err
		}
	}

	for row, b := range summary.Strategies {
		values := []interface{}{
			string(b.Strategy), b.Wins, b.Trials, b.RoundedProportion,
			b.WilsonLow, b.WilsonHigh, b.TheoreticalRate, b.ZScore, b.Converged,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue("Summary", cell, v); err != nil {
				return err
			}
		}
	}

	metaRow := len(summary.Strategies) + 3
	meta := [][2]interface{}{
		{"Run ID", run.RunID.String()},
		{"Seed", run.Seed},
		{"Fingerprint", run.Fingerprint.String()},
		{"Runtime (ms)", run.RuntimeMs},
	}
	for i, kv := range meta {
		if err := f.SetCellValue("Summary", fmt.Sprintf("A%d", metaRow+i), kv[0]); err != nil {
			return err
		}
		if err := f.SetCellValue("Summary", fmt.Sprintf("B%d", metaRow+i), kv[1]); err != nil {
			return err
		}
	}
	return nil
}

func (r *ExcelReporter) writeResults(f *excelize.File, run ports.StoredRun) error {
	if _, err := f.NewSheet("Results"); err != nil {
		return err
	}

	for col, h := range []interface{}{"Trial", "Strategy", "Outcome"} {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue("Results", cell, h); err != nil {
			return err
		}
	}
	for i, result := range run.Aggregate.Results {
		values := []interface{}{result.Trial, string(result.Strategy), string(result.Outcome)}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue("Results", cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
