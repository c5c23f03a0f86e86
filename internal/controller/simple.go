package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "ngshift.dev/pkg/ngshift/internal/model"
	"ngshift.dev/pkg/ngshift/pkg/textdiff"
)

const (
	statusError     = "error"
	statusUnchanged = "unchanged"
	statusConverted = "converted"
	statusWritten   = "written"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd    *cobra.Command
	color  bool
	styles diffStyles
	config StartConfig
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, color bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, color: color, styles: newDiffStyles()}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.config = StartConfig{}
	for _, opt := range options {
		opt(&s.config)
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayResult prints the outcome of one file, with its plan and diff when
// enabled at Start.
func (s *SimpleUI) DisplayResult(ctx context.Context, result m.FileResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	switch {
	case result.Err != nil:
		s.printf("%s: %s: %v\n", result.Path, statusError, result.Err)
		return
	case !result.Changed():
		s.printf("%s: %s\n", result.Path, statusUnchanged)
		return
	}

	s.printf("%s: %d edit(s), %s\n", result.Path, result.Script.Len(), resultStatus(result))

	if s.config.showPlan && len(result.Plan) > 0 {
		s.printf("%s", renderPlanTable(result.Plan))
	}

	if s.config.showDiff && result.Diff != "" {
		s.printf("%s", s.renderDiff(result.Diff))
	}
}

// DisplaySummary prints one table row per file and the totals.
func (s *SimpleUI) DisplaySummary(ctx context.Context, results []m.FileResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	if len(results) == 0 {
		s.printf("no Java sources found\n")
		return
	}

	s.printf("\n%s", renderSummaryTable(results))

	if s.config.write {
		return
	}

	var pending int

	for _, result := range results {
		if result.Changed() {
			pending++
		}
	}

	if pending > 0 {
		s.printf("dry run: %d file(s) not written, re-run with --write to apply\n", pending)
	}
}

// DisplayProfile prints a rendered profile document.
func (s *SimpleUI) DisplayProfile(ctx context.Context, rendered []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := s.cmd.OutOrStdout().Write(rendered)

	return err
}

func renderPlanTable(plan []m.PlanEntry) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Step", "Edit", "Line", "Node", "Value"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
	})

	for _, entry := range plan {
		table.Append([]string{
			fmt.Sprintf("%d", entry.Unit),
			entry.Kind.String(),
			fmt.Sprintf("%d", entry.Line),
			entry.Subject,
			entry.Detail,
		})
	}

	table.Render()

	return tableBuffer.String()
}

func renderSummaryTable(results []m.FileResult) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Edits", "Added", "Removed", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	var totalEdits, totalAdded, totalRemoved, failed int

	for _, result := range results {
		added, removed := textdiff.Stats(result.Diff)
		status := resultStatus(result)

		if status == statusError {
			failed++
		}

		totalEdits += result.Script.Len()
		totalAdded += added
		totalRemoved += removed

		table.Append([]string{
			string(result.Path),
			fmt.Sprintf("%d", result.Script.Len()),
			fmt.Sprintf("%d", added),
			fmt.Sprintf("%d", removed),
			status,
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(results)),
		fmt.Sprintf("%d", totalEdits),
		fmt.Sprintf("%d", totalAdded),
		fmt.Sprintf("%d", totalRemoved),
		fmt.Sprintf("%d failed", failed),
	})

	table.Render()

	return tableBuffer.String()
}

func resultStatus(result m.FileResult) string {
	switch {
	case result.Err != nil:
		return statusError
	case !result.Changed():
		return statusUnchanged
	case result.Written:
		return statusWritten
	}

	return statusConverted
}

func (s *SimpleUI) renderDiff(diff string) string {
	if !s.color {
		return diff
	}

	var sb strings.Builder

	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}

		text := strings.TrimSuffix(line, "\n")
		sb.WriteString(s.styles.line(text))

		if len(text) < len(line) {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
