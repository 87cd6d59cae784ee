package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/temirov/urisync/internal/propagation"
)

const (
	formatTableStringConstant          = "table"
	formatYAMLStringConstant           = "yaml"
	formatNoneStringConstant           = "none"
	unsupportedFormatTemplateConstant  = "unsupported report format %q"
	writerNotConfiguredMessageConstant = "report writer not configured"
	columnPhaseConstant                = "Phase"
	columnRepositoryConstant           = "Repository"
	columnBranchConstant               = "Branch"
	columnPathsConstant                = "Paths"
	columnOutcomeConstant              = "Outcome"
	columnUpstreamConstant             = "Upstream"
	columnPushedConstant               = "Pushed"
	skippedOutcomeTemplateConstant     = "skipped (%s)"
	pushedYesConstant                  = "yes"
	pushedNoConstant                   = "no"
	footerCommittedLabelConstant       = "Committed"
	footerPushedLabelConstant          = "Pushed"
	pathSeparatorConstant              = ", "
	yamlIndentConstant                 = 2
)

// Format selects how a report is rendered.
type Format string

// Supported formats.
const (
	FormatTable Format = Format(formatTableStringConstant)
	FormatYAML  Format = Format(formatYAMLStringConstant)
	FormatNone  Format = Format(formatNoneStringConstant)
)

// ErrWriterNotConfigured indicates the renderer was constructed without an output writer.
var ErrWriterNotConfigured = errors.New(writerNotConfiguredMessageConstant)

// SupportedFormats lists the accepted format names.
func SupportedFormats() []string {
	return []string{formatTableStringConstant, formatYAMLStringConstant, formatNoneStringConstant}
}

// ParseFormat converts a case-insensitive format name.
func ParseFormat(value string) (Format, error) {
	normalized := Format(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case FormatTable, FormatYAML, FormatNone:
		return normalized, nil
	default:
		return "", fmt.Errorf(unsupportedFormatTemplateConstant, value)
	}
}

// Renderer writes run reports to an output stream.
type Renderer struct {
	writer io.Writer
	format Format
}

// NewRenderer constructs a Renderer for the given format.
func NewRenderer(writer io.Writer, format Format) (*Renderer, error) {
	if writer == nil {
		return nil, ErrWriterNotConfigured
	}
	parsedFormat, formatError := ParseFormat(string(format))
	if formatError != nil {
		return nil, formatError
	}
	return &Renderer{writer: writer, format: parsedFormat}, nil
}

// Render writes runReport. Empty reports and FormatNone produce no output.
func (renderer *Renderer) Render(runReport propagation.Report) error {
	if renderer.format == FormatNone || len(runReport.Steps) == 0 {
		return nil
	}
	if renderer.format == FormatYAML {
		return renderer.renderYAML(runReport)
	}
	renderer.renderTable(runReport)
	return nil
}

func (renderer *Renderer) renderTable(runReport propagation.Report) {
	tableWriter := table.NewWriter()
	tableWriter.SetOutputMirror(renderer.writer)
	tableWriter.AppendHeader(table.Row{
		columnPhaseConstant,
		columnRepositoryConstant,
		columnBranchConstant,
		columnPathsConstant,
		columnOutcomeConstant,
		columnUpstreamConstant,
		columnPushedConstant,
	})

	for _, step := range runReport.Steps {
		tableWriter.AppendRow(table.Row{
			step.Phase,
			step.Repository,
			step.Branch,
			strings.Join(step.Paths, pathSeparatorConstant),
			describeOutcome(step),
			step.Upstream,
			describePushed(step.Pushed),
		})
	}

	tableWriter.AppendFooter(table.Row{
		"", "", "", "",
		footerCommittedLabelConstant + " " + strconv.Itoa(runReport.CommittedCount()),
		"",
		footerPushedLabelConstant + " " + strconv.Itoa(runReport.PushedCount()),
	})
	tableWriter.SetStyle(table.StyleRounded)
	tableWriter.Render()
}

func (renderer *Renderer) renderYAML(runReport propagation.Report) error {
	encoder := yaml.NewEncoder(renderer.writer)
	encoder.SetIndent(yamlIndentConstant)
	if encodeError := encoder.Encode(runReport); encodeError != nil {
		return encodeError
	}
	return encoder.Close()
}

func describeOutcome(step propagation.Step) string {
	if step.Skipped != propagation.SkipReasonNone {
		return fmt.Sprintf(skippedOutcomeTemplateConstant, step.Skipped)
	}
	return string(step.Outcome)
}

func describePushed(pushed bool) string {
	if pushed {
		return pushedYesConstant
	}
	return pushedNoConstant
}
