package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kilupskalvis/dochist/internal/core"
)

var undoCmd = &cobra.Command{
	Use:   "undo <record>",
	Short: "Undo a recorded change",
	Long: `Reverse the change captured by a record: re-create a destroyed
document, destroy a created one, or restore the previous field values
of an update.`,
	Args: cobra.ExactArgs(1),
	Run:  runUndo,
}

var undoActor string

func init() {
	undoCmd.Flags().StringVar(&undoActor, "actor", "", "Identity written to the modifier field")
}

func runUndo(cmd *cobra.Command, args []string) {
	bgCtx := context.Background()
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

	if err := tracker.Undo(bgCtx, undoActor); err != nil {
		exitError("failed to undo: %v", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("[%s] undone\n", record.ShortID())
	fmt.Printf(" %s %s\n", record.Action, chainString(record.Chain))
}
