package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilupskalvis/dochist/internal/config"
	"github.com/kilupskalvis/dochist/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a dochist repository",
	Long: `Create a .dochist directory in the current directory with the
configuration file and empty document and record databases. Tracked
types are declared in the config file afterwards.`,
	Run: runInit,
}

var initLocale string

func init() {
	initCmd.Flags().StringVar(&initLocale, "locale", "", "Default locale for localized fields (BCP 47)")
}

func runInit(cmd *cobra.Command, args []string) {
	cfg, err := config.Initialize(initLocale)
	if err != nil {
		exitError("%v", err)
	}

	records, err := store.New(cfg.RecordsPath())
	if err != nil {
		exitError("failed to create record store: %v", err)
	}
	defer records.Close()
	if err := records.Initialize(); err != nil {
		exitError("failed to initialize record store: %v", err)
	}

	fmt.Printf("Initialized dochist repository in %s\n", cfg.Path())
	fmt.Printf("Locale: %s\n", cfg.NormalizedLocale())
}
