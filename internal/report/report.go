// Package report accumulates validation findings and renders the
// human-readable validation report.
package report

import (
	"fmt"
	"io"
	"strings"
)

const bannerWidth = 60

// Section groups the positive confirmation lines of one validation check.
type Section struct {
	Title    string
	confirms []string
}

// Confirmf appends a positive confirmation line to the section.
func (s *Section) Confirmf(format string, args ...interface{}) {
	s.confirms = append(s.confirms, fmt.Sprintf(format, args...))
}

// Confirmations returns the confirmation lines in append order.
func (s *Section) Confirmations() []string {
	return s.confirms
}

// Report collects findings across all checks. Errors fail the run,
// warnings do not. Both lists keep append order.
type Report struct {
	sections []*Section
	errors   []string
	warnings []string
}

func New() *Report {
	return &Report{}
}

// AddSection opens a new report section for one check.
func (r *Report) AddSection(title string) *Section {
	s := &Section{Title: title}
	r.sections = append(r.sections, s)
	return s
}

// Sections returns the report sections in check order.
func (r *Report) Sections() []*Section {
	return r.sections
}

// Errorf records a validation error.
func (r *Report) Errorf(format string, args ...interface{}) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

// Warnf records a validation warning.
func (r *Report) Warnf(format string, args ...interface{}) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

// Errors returns the recorded errors in append order.
func (r *Report) Errors() []string {
	return r.errors
}

// Warnings returns the recorded warnings in append order.
func (r *Report) Warnings() []string {
	return r.warnings
}

// HasErrors reports whether any validation error was recorded.
func (r *Report) HasErrors() bool {
	return len(r.errors) > 0
}

// Pass reports the overall verdict. Warnings alone still pass.
func (r *Report) Pass() bool {
	return !r.HasErrors()
}

// Print writes the full sectioned report to w: header banner, per-check
// confirmation lines, results banner, numbered error and warning lists,
// and the final verdict line.
func (r *Report) Print(w io.Writer, fileName string) {
	banner := strings.Repeat("=", bannerWidth)

	fmt.Fprintf(w, "\n%s\n", banner)
	fmt.Fprintln(w, "STM32CubeMX Configuration Validator")
	fmt.Fprintf(w, "File: %s\n", fileName)
	fmt.Fprintln(w, banner)

	for _, s := range r.sections {
		fmt.Fprintf(w, "\n[%s]\n", s.Title)
		for _, line := range s.confirms {
			fmt.Fprintf(w, "  ✓ %s\n", line)
		}
	}

	fmt.Fprintf(w, "\n%s\n", banner)
	fmt.Fprintln(w, "Validation Results")
	fmt.Fprintln(w, banner)

	if len(r.errors) == 0 && len(r.warnings) == 0 {
		fmt.Fprintln(w, "\n✓ All checks passed! Configuration meets platform requirements.")
		return
	}

	if len(r.errors) > 0 {
		fmt.Fprintf(w, "\n❌ ERRORS (%d):\n", len(r.errors))
		for i, e := range r.errors {
			fmt.Fprintf(w, "  %d. %s\n", i+1, e)
		}
	}

	if len(r.warnings) > 0 {
		fmt.Fprintf(w, "\n⚠ WARNINGS (%d):\n", len(r.warnings))
		for i, warn := range r.warnings {
			fmt.Fprintf(w, "  %d. %s\n", i+1, warn)
		}
	}

	if len(r.errors) > 0 {
		fmt.Fprintln(w, "\n❌ Configuration FAILED validation. Fix errors before proceeding.")
	} else {
		fmt.Fprintln(w, "\n⚠ Configuration passed with warnings. Review recommendations.")
	}
}
