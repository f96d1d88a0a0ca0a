package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kilupskalvis/dochist/internal/core"
)

var redoCmd = &cobra.Command{
	Use:   "redo <record>",
	Short: "Reapply a recorded change",
	Long: `Reapply the change captured by a record: re-create a created
document, destroy a destroyed one, or apply the new field values of an
update again.`,
	Args: cobra.ExactArgs(1),
	Run:  runRedo,
}

var redoActor string

func init() {
	redoCmd.Flags().StringVar(&redoActor, "actor", "", "Identity written to the modifier field")
}

func runRedo(cmd *cobra.Command, args []string) {
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

	if err := tracker.Redo(bgCtx, redoActor); err != nil {
		exitError("failed to redo: %v", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("[%s] redone\n", record.ShortID())
	fmt.Printf(" %s %s\n", record.Action, chainString(record.Chain))
}
