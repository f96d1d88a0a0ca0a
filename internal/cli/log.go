package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kilupskalvis/dochist/internal/models"
)

var logCmd = &cobra.Command{
	Use:   "log <type> <id>",
	Short: "Show the change history of a document",
	Long:  `Display every recorded change whose association chain starts at the given root document.`,
	Args:  cobra.ExactArgs(2),
	Run:   runLog,
}

var (
	logOneline bool
	logActor   string
)

func init() {
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "Show each record on a single line")
	logCmd.Flags().StringVar(&logActor, "actor", "", "Only show records made by this modifier")
}

func runLog(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	records, err := c.Records.ListByRoot(args[0], args[1])
	if err != nil {
		exitError("failed to list records: %v", err)
	}

	if logActor != "" {
		filtered := records[:0]
		for _, record := range records {
			if record.ModifierID == logActor {
				filtered = append(filtered, record)
			}
		}
		records = filtered
	}

	if len(records) == 0 {
		fmt.Println("No change records")
		return
	}

	yellow := color.New(color.FgYellow)

	for _, record := range records {
		if logOneline {
			yellow.Printf("%s ", record.ShortID())
			actionColor(record.Action).Printf("%-7s ", record.Action)
			fmt.Printf("v%d %s\n", record.Version, chainString(record.Chain))
			continue
		}

		yellow.Printf("record %s\n", record.ID)
		fmt.Printf("Action:  ")
		actionColor(record.Action).Printf("%s\n", record.Action)
		fmt.Printf("Chain:   %s\n", chainString(record.Chain))
		fmt.Printf("Version: %d\n", record.Version)
		if record.ModifierID != "" {
			fmt.Printf("By:      %s\n", record.ModifierID)
		}
		fmt.Printf("Date:    %s\n", record.CreatedAt.Format("Mon Jan 2 15:04:05 2006"))
		fmt.Println()
	}
}

// actionColor maps an action to its display color.
func actionColor(action models.Action) *color.Color {
	switch action {
	case models.ActionCreate:
		return color.New(color.FgGreen)
	case models.ActionDestroy:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgYellow)
	}
}

// chainString renders an association chain as Type/id.assoc/id...
func chainString(chain []models.AssociationStep) string {
	out := ""
	for i, step := range chain {
		if i > 0 {
			out += "."
		}
		out += step.Name
		if step.ID != "" {
			out += "/" + step.ID
		}
	}
	return out
}
