// Package cli implements the command-line interface for DocHist.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilupskalvis/dochist/internal/config"
	"github.com/kilupskalvis/dochist/internal/docstore"
	"github.com/kilupskalvis/dochist/internal/meta"
	"github.com/kilupskalvis/dochist/internal/store"
)

// cmdContext holds common resources for CLI commands
type cmdContext struct {
	Config  *config.Config
	Records *store.Store
	Docs    docstore.Store
	Meta    *meta.Registry

	docs *docstore.BoltStore
}

// Close releases resources held by cmdContext
func (c *cmdContext) Close() {
	if c.Records != nil {
		c.Records.Close()
	}
	if c.docs != nil {
		c.docs.Close()
	}
}

// initContext initializes config, record store, and metadata registry
func initContext() *cmdContext {
	cfg, err := config.Load()
	if err != nil {
		exitError("%v", err)
	}

	records, err := store.New(cfg.RecordsPath())
	if err != nil {
		exitError("failed to open record store: %v", err)
	}
	if err := records.Initialize(); err != nil {
		records.Close()
		exitError("failed to initialize record store: %v", err)
	}

	return &cmdContext{Config: cfg, Records: records, Meta: cfg.Registry()}
}

// initFullContext initializes config, record store, and document store
func initFullContext() *cmdContext {
	c := initContext()

	docs, err := docstore.OpenBolt(c.Config.DocumentsPath())
	if err != nil {
		c.Close()
		exitError("failed to open document store: %v", err)
	}
	c.docs = docs
	c.Docs = docs

	return c
}

var rootCmd = &cobra.Command{
	Use:   "dochist",
	Short: "Document history tracking",
	Long: `DocHist is an audit/history engine for trees of embedded documents.
Track field-level changes, inspect classified edit summaries, and undo
or redo any recorded change against the live document tree.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editsCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(redoCmd)
}

// exitError prints an error and exits
func exitError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
