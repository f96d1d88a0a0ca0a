package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kilupskalvis/dochist/internal/core"
)

var editsCmd = &cobra.Command{
	Use:   "edits <type> <id>",
	Short: "Show classified edits across a document's history",
	Long: `Walk every change record of the given root document and render each
record's classified edit summary diff-style.`,
	Args: cobra.ExactArgs(2),
	Run:  runEdits,
}

func runEdits(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	records, err := c.Records.ListByRoot(args[0], args[1])
	if err != nil {
		exitError("failed to list records: %v", err)
	}
	if len(records) == 0 {
		fmt.Println("No change records")
		return
	}

	yellow := color.New(color.FgYellow)

	for i, record := range records {
		if i > 0 {
			fmt.Println()
		}
		yellow.Printf("%s ", record.ShortID())
		actionColor(record.Action).Printf("%-7s ", record.Action)
		fmt.Printf("v%d %s\n", record.Version, chainString(record.Chain))

		tracker, err := core.NewTracker(record, c.Meta, c.Docs)
		if err != nil {
			exitError("%v", err)
		}
		edits := tracker.Edits()
		if edits.Empty() {
			fmt.Println("  no tracked edits")
			continue
		}
		displayEdits(edits)
	}
}
