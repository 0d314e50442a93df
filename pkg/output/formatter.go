package output

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zmasarw3h/munero-deploycheck/pkg/types"
)

func PrintResult(result *types.CheckResult, format string) error {
	switch format {
	case "json":
		return printJSON(result)
	case "yaml":
		return printYAML(result)
	case "table":
		return printTable(result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func PrintSummary(summary *types.RunSummary, format string) error {
	switch format {
	case "json":
		return printJSON(summary)
	case "yaml":
		return printYAML(summary)
	case "table":
		return printTableSummary(summary)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	return encoder.Encode(v)
}

func statusMark(status types.CheckStatus) string {
	switch status {
	case types.StatusFail:
		return "✗"
	case types.StatusSkipped:
		return "-"
	default:
		return "✓"
	}
}

func printTable(result *types.CheckResult) error {
	fmt.Printf("Check:    %s\n", result.Check)
	fmt.Printf("Target:   %s\n", result.Target)
	fmt.Printf("Status:   %s %s\n", statusMark(result.Status), result.Status)
	fmt.Printf("Duration: %v\n", result.Duration)

	if result.Error != "" {
		fmt.Printf("Error:    %s\n", result.Error)
	}

	if len(result.Details) > 0 {
		fmt.Println("\nDetails:")
		detailsJSON, _ := json.MarshalIndent(result.Details, "  ", "  ")
		fmt.Printf("  %s\n", string(detailsJSON))
	}

	return nil
}

func printTableSummary(summary *types.RunSummary) error {
	fmt.Printf("%s summary (run %s)\n", summary.Stage, summary.RunID)
	fmt.Printf("Total: %d  Passed: %d  Failed: %d  Skipped: %d  Duration: %v\n\n",
		summary.Total, summary.Passed, summary.Failed, summary.Skipped, summary.Duration)

	for _, result := range summary.Results {
		label := result.Check
		if result.Advisory {
			label += " (advisory)"
		}
		fmt.Printf("[%s] %-24s %s\n", statusMark(result.Status), label, result.Target)
		if result.Error != "" {
			fmt.Printf("    %s\n", result.Error)
		}
	}

	return nil
}
