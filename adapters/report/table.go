package report

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"montyhall/internal/analysis"
	"montyhall/internal/errors"
	"montyhall/ports"
)

// TableReporter renders a run as a plain-text proportion table
type TableReporter struct{}

// NewTableReporter creates a text table reporter
func NewTableReporter() *TableReporter {
	return &TableReporter{}
}

// Report renders the per-strategy win proportions, rounded to two decimal
// places, alongside the Wilson interval and the theoretical rate
func (r *TableReporter) Report(run ports.StoredRun) ([]byte, error) {
	summary, err := analysis.Summarize(run.Aggregate)
	if err != nil {
		return nil, errors.ReportingFailed("table", err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Run %s: %d trials (seed %d)\n\n", run.RunID, run.Trials, run.Seed)

	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STRATEGY\tWINS\tTRIALS\tWIN RATE\t95% CI\tEXPECTED")
	for _, b := range summary.Strategies {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\t[%.3f, %.3f]\t%.3f\n",
			b.Strategy, b.Wins, b.Trials, b.RoundedProportion, b.WilsonLow, b.WilsonHigh, b.TheoreticalRate)
	}
	if err := w.Flush(); err != nil {
		return nil, errors.ReportingFailed("table", err)
	}
	return buf.Bytes(), nil
}
