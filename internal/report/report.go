package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"driftremediator/internal/orchestrator"
)

// OutputFormatType defines the format types for the remediation report.
type OutputFormatType string

const (
	// OutputFormatTypeJSON represents JSON output format
	OutputFormatTypeJSON OutputFormatType = "JSON"
	// OutputFormatTypeTABLE represents table output format
	OutputFormatTypeTABLE OutputFormatType = "TABLE"
)

// ParseFormat maps a user-supplied format name onto a format type.
func ParseFormat(name string) (OutputFormatType, error) {
	switch name {
	case "json", "JSON":
		return OutputFormatTypeJSON, nil
	case "table", "TABLE", "":
		return OutputFormatTypeTABLE, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", name)
	}
}

// PrintResult renders a remediation result using the specified output format.
// Supported formats: "json" (machine-readable) and "table" (human-friendly).
func PrintResult(result *orchestrator.Result, outputFormat OutputFormatType) error {
	return FprintResult(os.Stdout, result, outputFormat)
}

// FprintResult renders the result to an arbitrary writer.
func FprintResult(w io.Writer, result *orchestrator.Result, outputFormat OutputFormatType) error {
	switch outputFormat {
	case OutputFormatTypeJSON:
		return printJSONResult(w, result)
	case OutputFormatTypeTABLE:
		return printTableResult(w, result)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func printJSONResult(w io.Writer, result *orchestrator.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling result to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printTableResult(w io.Writer, result *orchestrator.Result) error {
	writer := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(writer, "\nSTACK:\t%s\n", result.StackName)
	fmt.Fprintf(writer, "RUN:\t%s\n", result.RunID)
	fmt.Fprintf(writer, "STAGE:\t%s\n", result.Stage)
	if !result.Drifted {
		fmt.Fprintln(writer, "\nNo drift detected, stack is in sync.")
		return writer.Flush()
	}
	if result.CheckpointPath != "" {
		fmt.Fprintf(writer, "CHECKPOINT:\t%s\n", result.CheckpointPath)
	}

	if len(result.Outcomes)+len(result.Skipped) > 0 {
		fmt.Fprintln(writer, "\nRESOURCE\tTYPE\tACTION\tSTATUS\tDETAIL")
		fmt.Fprintln(writer, "--------\t----\t------\t------\t------")
		for _, o := range result.Outcomes {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
				o.LogicalID, o.ResourceType, o.Action, o.Status, formatDetail(o.Detail))
		}
		for _, o := range result.Skipped {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
				o.LogicalID, o.ResourceType, o.Action, o.Status, formatDetail(o.Detail))
		}
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(writer, "\nWARNING: %s\n", warning)
	}

	fmt.Fprintln(writer, "")
	fmt.Fprintf(writer, "Summary: %d remediated, %d skipped\n", len(result.Outcomes), len(result.Skipped))

	return writer.Flush()
}

func formatDetail(detail string) string {
	if detail == "" {
		return "-"
	}
	return detail
}

// DefaultPrinter is the default implementation of the result printer
type DefaultPrinter struct{}

// PrintResult implements the printer interface
func (p DefaultPrinter) PrintResult(result *orchestrator.Result, format OutputFormatType) error {
	return PrintResult(result, format)
}
