package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the zoomvault application
var rootCmd = &cobra.Command{
	Use:   "zoomvault",
	Short: "Syncs Zoom meeting transcripts into a local Markdown vault",
	Long: `zoomvault pulls cloud recording transcripts from a Zoom account and
materializes each one as a metadata-tagged Markdown document in a local
vault folder. Runs are idempotent: a transcript that was already synced,
or whose document already exists, is never written twice.

It can run as:
  - A one-shot sync (default)
  - A long-running daemon that syncs on an interval (serve)`,
	SilenceUsage: true,
}

var configFile string

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "zoomvault version %s\n" .Version}}`)

	// If no subcommand is provided, run a one-shot sync by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "sync")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to the YAML config file")

	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newVersionCmd())
}
