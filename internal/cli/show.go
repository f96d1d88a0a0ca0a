package cli

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kilupskalvis/dochist/internal/core"
)

var showCmd = &cobra.Command{
	Use:   "show <record>",
	Short: "Show a change record and its classified edits",
	Long: `Display a change record with its edit summary: added and removed
fields, scalar modifications, array deltas, and embedded collection deltas.`,
	Args: cobra.ExactArgs(1),
	Run:  runShow,
}

func runShow(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	record, err := c.Records.GetRecord(args[0])
	if err != nil {
		record, err = c.Records.GetRecordByShortID(args[0])
		if err != nil {
			exitError("record not found: %s", args[0])
		}
	}

	tracker, err := core.NewTracker(record, c.Meta, c.Docs)
	if err != nil {
		exitError("%v", err)
	}

	yellow := color.New(color.FgYellow)
	yellow.Printf("record %s\n", record.ID)
	fmt.Printf("Action:  ")
	actionColor(record.Action).Printf("%s\n", record.Action)
	fmt.Printf("Chain:   %s\n", chainString(record.Chain))
	fmt.Printf("Version: %d\n", record.Version)
	if record.ModifierID != "" {
		fmt.Printf("By:      %s\n", record.ModifierID)
	}
	fmt.Println()

	edits := tracker.Edits()
	if edits.Empty() {
		fmt.Println("No tracked edits")
		return
	}
	displayEdits(edits)
}

// displayEdits renders an edit summary diff-style.
func displayEdits(edits *core.EditSummary) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	magenta := color.New(color.FgMagenta)

	for field, value := range edits.Added {
		green.Printf("+ %s: %s\n", field, compactJSON(value))
	}
	for field, value := range edits.Removed {
		red.Printf("- %s: %s\n", field, compactJSON(value))
	}
	for field, change := range edits.Modified {
		yellow.Printf("~ %s: %s -> %s\n", field, compactJSON(change.From), compactJSON(change.To))
	}
	for field, delta := range edits.Arrays {
		yellow.Printf("~ %s (array)\n", field)
		for _, item := range delta.Added {
			green.Printf("  + %s\n", compactJSON(item))
		}
		for _, item := range delta.Removed {
			red.Printf("  - %s\n", compactJSON(item))
		}
	}
	for field, delta := range edits.Embedded {
		magenta.Printf("~ %s (embedded)\n", field)
		for _, record := range delta.Added {
			green.Printf("  + %s\n", compactJSON(record))
		}
		for _, record := range delta.Removed {
			red.Printf("  - %s\n", compactJSON(record))
		}
		for _, pair := range delta.Modified {
			yellow.Printf("  ~ %s -> %s\n", compactJSON(pair.From), compactJSON(pair.To))
		}
	}
}

// compactJSON renders a value as single-line JSON.
func compactJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
