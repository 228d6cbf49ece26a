// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
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

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for _, line := range lines {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResumeSummary outputs the name, template and per-page layout of a document.
func (p *Printer) PrintResumeSummary(doc *types.ResumeData) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	name := doc.Basics.Name
	if name == "" {
		name = "(unnamed)"
	}
	sb.WriteString(fmt.Sprintf("Name:      %s\n", name))
	sb.WriteString(fmt.Sprintf("Template:  %s\n", doc.Metadata.Template))
	sb.WriteString(fmt.Sprintf("Items:     %d\n", doc.ItemCount()))
	sb.WriteString(fmt.Sprintf("Custom:    %d sections\n", len(doc.CustomSections)))
	sb.WriteString("\n")

	for i, page := range doc.Metadata.Layout.Pages {
		width := ""
		if page.FullWidth {
			width = " (full width)"
		}
		sb.WriteString(fmt.Sprintf("Page %d%s\n", i+1, width))
		sb.WriteString(fmt.Sprintf("  main:    %s\n", strings.Join(page.Main, ", ")))
		if len(page.Sidebar) > 0 {
			sb.WriteString(fmt.Sprintf("  sidebar: %s\n", strings.Join(page.Sidebar, ", ")))
		}
	}

	p.printBox("RESUME", sb.String())
}

// PrintCoercions lists soft fields that were replaced by their fallbacks.
func (p *Printer) PrintCoercions(coercions []schemas.Coercion) {
	if len(coercions) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(coercions), maxItemsToShow)
	for _, c := range coercions[:count] {
		sb.WriteString(fmt.Sprintf("  • %s = %v\n", c.Field, c.Value))
	}
	if len(coercions) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(coercions)-maxItemsToShow))
	}

	p.printBox(fmt.Sprintf("COERCED FIELDS (%d)", len(coercions)), sb.String())
}

// PrintValidationErrors lists every field error of a rejected document.
func (p *Printer) PrintValidationErrors(ve *schemas.ValidationError) {
	if ve == nil || len(ve.Errors) == 0 {
		return
	}

	var sb strings.Builder
	for _, fe := range ve.Errors {
		sb.WriteString(fmt.Sprintf("✗ %s\n", fe.Field))
		sb.WriteString(fmt.Sprintf("    %s\n", fe.Message))
	}

	p.printBox(fmt.Sprintf("VALIDATION ERRORS (%d)", len(ve.Errors)), sb.String())
}

// PrintLayoutIssues outputs the layout check result, errors before warnings.
func (p *Printer) PrintLayoutIssues(issues []layout.Issue) {
	if len(issues) == 0 {
		p.printBox("LAYOUT", "✓ No issues")
		return
	}

	var sb strings.Builder
	errs := layout.Errors(issues)
	sb.WriteString(fmt.Sprintf("Errors:   %d\n", len(errs)))
	sb.WriteString(fmt.Sprintf("Warnings: %d\n", len(issues)-len(errs)))
	sb.WriteString("\n")

	for _, sev := range []layout.Severity{layout.SeverityError, layout.SeverityWarning} {
		mark := "✗"
		if sev == layout.SeverityWarning {
			mark = "⚠"
		}
		for _, is := range issues {
			if is.Severity != sev {
				continue
			}
			sb.WriteString(fmt.Sprintf("%s [%s] %s\n", mark, is.Kind, is.Message))
		}
	}

	p.printBox("LAYOUT ISSUES", sb.String())
}

// PrintMoveTargets outputs the compatible sections grouped by page.
func (p *Printer) PrintMoveTargets(t types.CustomSectionType, pages []editor.MoveTargetPage) {
	title := fmt.Sprintf("MOVE TARGETS: %s", t)
	if len(pages) == 0 {
		p.printBox(title, "No compatible sections")
		return
	}

	var sb strings.Builder
	for _, page := range pages {
		sb.WriteString(fmt.Sprintf("Page %d\n", page.PageIndex+1))
		for _, sec := range page.Sections {
			kind := "custom"
			if sec.IsStandard {
				kind = "standard"
			}
			sb.WriteString(fmt.Sprintf("  • %s (%s, %s)\n", sec.SectionTitle, kind, sec.SectionID))
		}
	}

	p.printBox(title, sb.String())
}

// PrintMoveResult outputs where a moved item ended up.
func (p *Printer) PrintMoveResult(cmd editor.MoveCommand, result *editor.MoveResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Item:     %s\n", cmd.ItemID))
	sb.WriteString(fmt.Sprintf("Section:  %s\n", result.SectionID))
	sb.WriteString(fmt.Sprintf("Page:     %d\n", result.PageIndex+1))
	if result.Created {
		sb.WriteString("✓ New section created\n")
	}

	p.printBox("MOVED", sb.String())
}
