package layout

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Severity grades a layout issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// IssueKind classifies a layout issue.
type IssueKind string

const (
	IssueDangling         IssueKind = "dangling_reference"
	IssueDuplicate        IssueKind = "duplicate_reference"
	IssueFullWidthSidebar IssueKind = "full_width_sidebar"
	IssueNoPages          IssueKind = "no_pages"
)

// Issue is one inconsistency between the layout and the sections.
type Issue struct {
	Kind      IssueKind    `json:"kind"`
	Severity  Severity     `json:"severity"`
	PageIndex int          `json:"pageIndex"`
	Column    types.Column `json:"column,omitempty"`
	Ref       string       `json:"ref,omitempty"`
	Message   string       `json:"message"`
}

// CheckLayout reports dangling and duplicated references and full-width pages
// whose sidebar is not empty. Issues are in layout order.
func CheckLayout(doc *types.ResumeData) []Issue {
	var issues []Issue
	pages := doc.Metadata.Layout.Pages
	if len(pages) == 0 {
		return []Issue{{
			Kind:      IssueNoPages,
			Severity:  SeverityError,
			PageIndex: -1,
			Message:   "layout has no pages",
		}}
	}

	seen := make(map[string]Location)
	for p := range pages {
		page := &pages[p]
		for _, col := range []types.Column{types.ColumnMain, types.ColumnSidebar} {
			for i, raw := range *page.Slot(col) {
				if _, ok := doc.Resolve(types.ParseSectionRef(raw)); !ok {
					issues = append(issues, Issue{
						Kind:      IssueDangling,
						Severity:  SeverityError,
						PageIndex: p,
						Column:    col,
						Ref:       raw,
						Message:   fmt.Sprintf("%q does not match a section", raw),
					})
					continue
				}
				if first, dup := seen[raw]; dup {
					issues = append(issues, Issue{
						Kind:      IssueDuplicate,
						Severity:  SeverityError,
						PageIndex: p,
						Column:    col,
						Ref:       raw,
						Message:   fmt.Sprintf("%q is already placed on page %d (%s)", raw, first.PageIndex+1, first.Column),
					})
					continue
				}
				seen[raw] = Location{PageIndex: p, Column: col, Index: i}
			}
		}
		if page.FullWidth && len(page.Sidebar) > 0 {
			issues = append(issues, Issue{
				Kind:      IssueFullWidthSidebar,
				Severity:  SeverityWarning,
				PageIndex: p,
				Column:    types.ColumnSidebar,
				Message:   fmt.Sprintf("page %d is full width but has %d sidebar sections", p+1, len(page.Sidebar)),
			})
		}
	}
	return issues
}

// Errors returns the error-severity issues.
func Errors(issues []Issue) []Issue {
	var out []Issue
	for _, is := range issues {
		if is.Severity == SeverityError {
			out = append(out, is)
		}
	}
	return out
}

// IssuesError wraps error-severity layout issues.
type IssuesError struct {
	Issues []Issue
}

func (e *IssuesError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		msgs[i] = is.Message
	}
	return "invalid layout: " + strings.Join(msgs, "; ")
}

// Validate returns an *IssuesError when the layout has error-severity issues.
func Validate(doc *types.ResumeData) error {
	if errs := Errors(CheckLayout(doc)); len(errs) > 0 {
		return &IssuesError{Issues: errs}
	}
	return nil
}
