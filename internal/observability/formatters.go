// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/blakehenkel24-eng/slidetheory/internal/quality"
	"github.com/blakehenkel24-eng/slidetheory/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintStep outputs a single generation progress line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStep(step, message string) {
	fmt.Fprintf(p.out, "→ [%s] %s\n", step, message)
}

// PrintBlueprint outputs a human-readable summary of a slide blueprint.
func (p *Printer) PrintBlueprint(bp *types.SlideBlueprint) {
	if bp == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Title:    %s\n", bp.TitleText())
	fmt.Fprintf(&sb, "Layout:   %s\n", bp.Layout)
	fmt.Fprintf(&sb, "Message:  %s\n", bp.KeyMessageText())
	if chart := bp.ChartType(); chart != "" {
		fmt.Fprintf(&sb, "Chart:    %s\n", chart)
	}

	if len(bp.SupportingPoints) > 0 {
		sb.WriteString("\nSupporting Points:\n")
		count := min(len(bp.SupportingPoints), maxItemsToShow)
		for i := 0; i < count; i++ {
			fmt.Fprintf(&sb, "  • %s\n", truncate(bp.SupportingPoints[i], 50))
		}
		if len(bp.SupportingPoints) > maxItemsToShow {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(bp.SupportingPoints)-maxItemsToShow)
		}
	}

	if len(bp.DataHighlights) > 0 {
		sb.WriteString("\nData Highlights:\n")
		count := min(len(bp.DataHighlights), 3)
		for i := 0; i < count; i++ {
			d := bp.DataHighlights[i]
			fmt.Fprintf(&sb, "  • %s: %s\n", d.Metric, truncate(d.Context, 40))
		}
		if len(bp.DataHighlights) > 3 {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(bp.DataHighlights)-3)
		}
	}

	p.printBox("SLIDE BLUEPRINT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAssessment outputs the overall score, the six dimension scores, strengths and improvements.
func (p *Printer) PrintAssessment(a *types.QualityAssessment) {
	if a == nil {
		return
	}

	label := quality.QualityLabel(a.Overall)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall:  %.1f / 4  (%s)\n", a.Overall, label.Text)
	fmt.Fprintf(&sb, "Badge:    %s\n\n", quality.Badge(*a))

	for _, dim := range types.Dimensions() {
		score := a.Dimensions.Get(dim)
		fmt.Fprintf(&sb, "  %-18s %s %d\n", dim, scoreBar(score), score)
	}

	if len(a.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		for _, s := range a.Strengths {
			fmt.Fprintf(&sb, "  ✓ %s\n", s)
		}
	}
	if len(a.Improvements) > 0 {
		sb.WriteString("\nImprovements:\n")
		for _, s := range a.Improvements {
			fmt.Fprintf(&sb, "  → %s\n", s)
		}
	}

	p.printBox("QUALITY ASSESSMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// scoreBar renders a 1-4 score as filled and empty blocks
func scoreBar(score int) string {
	score = max(0, min(4, score))
	return strings.Repeat("■", score) + strings.Repeat("□", 4-score)
}

// PrintIssues outputs the validation issues found.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintIssues(issues []types.ValidationIssue) {
	if len(issues) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO ISSUES FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d issues:\n\n", len(issues))

	for i, issue := range issues {
		fmt.Fprintf(&sb, "%s %s (%s)\n", severityMarker(issue.Severity), issue.Message, issue.Dimension)
		if issue.Suggestion != "" {
			fmt.Fprintf(&sb, "  %s\n", issue.Suggestion)
		}
		if i < len(issues)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("VALIDATION ISSUES", strings.TrimSuffix(sb.String(), "\n"))
}

func severityMarker(s types.Severity) string {
	switch s {
	case types.SeverityError:
		return "✗"
	case types.SeverityWarning:
		return "⚠"
	default:
		return "ℹ"
	}
}
