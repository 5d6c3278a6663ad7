package report

import (
	"bytes"
	"fmt"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"montyhall/internal/analysis"
	"montyhall/internal/errors"
	"montyhall/ports"
)

// MarkdownReporter renders a run as a markdown report
type MarkdownReporter struct{}

// NewMarkdownReporter creates a markdown reporter
func NewMarkdownReporter() *MarkdownReporter {
	return &MarkdownReporter{}
}

// Report produces the markdown source of the run report
func (r *MarkdownReporter) Report(run ports.StoredRun) ([]byte, error) {
	summary, err := analysis.Summarize(run.Aggregate)
	if err != nil {
		return nil, errors.ReportingFailed("markdown", err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Monty Hall Simulation Report\n\n")
	fmt.Fprintf(&buf, "- **Run ID**: `%s`\n", run.RunID)
	fmt.Fprintf(&buf, "- **Trials**: %d\n", run.Trials)
	fmt.Fprintf(&buf, "- **Seed**: %d\n", run.Seed)
	fmt.Fprintf(&buf, "- **Fingerprint**: `%s`\n", run.Fingerprint)
	fmt.Fprintf(&buf, "- **Runtime**: %d ms\n\n", run.RuntimeMs)

	fmt.Fprintf(&buf, "## Win rates\n\n")
	fmt.Fprintf(&buf, "| Strategy | Wins | Trials | Win rate | 95%% CI | Expected | z |\n")
	fmt.Fprintf(&buf, "|---|---|---|---|---|---|---|\n")
	for _, b := range summary.Strategies {
		fmt.Fprintf(&buf, "| %s | %d | %d | %.2f | [%.3f, %.3f] | %.3f | %.2f |\n",
			b.Strategy, b.Wins, b.Trials, b.RoundedProportion,
			b.WilsonLow, b.WilsonHigh, b.TheoreticalRate, b.ZScore)
	}

	fmt.Fprintf(&buf, "\n## Convergence\n\n")
	for _, b := range summary.Strategies {
		verdict := "within"
		if !b.Converged {
			verdict = "outside"
		}
		fmt.Fprintf(&buf, "- `%s` observed %.4f against the theoretical %.4f, %s the 95%% expectation band.\n",
			b.Strategy, b.Proportion, b.TheoreticalRate, verdict)
	}
	return buf.Bytes(), nil
}

// RenderHTML converts the markdown report to a standalone HTML fragment
func (r *MarkdownReporter) RenderHTML(run ports.StoredRun) ([]byte, error) {
	md, err := r.Report(run)
	if err != nil {
		return nil, err
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables | parser.AutoHeadingIDs)
	doc := p.Parse(md)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer), nil
}
