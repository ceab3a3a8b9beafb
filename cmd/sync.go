package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	var sinceDays int

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one complete sync pass and exit",
		Long: `Discover meeting transcripts in the configured Zoom account, download
any that are not yet in the vault and write them as Markdown documents.
Transcripts that were already synced are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(),
				syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if sinceDays > 0 {
				cfg.SinceDays = sinceDays
			}
			a := newApp(cfg, nil)

			return report(a.syncer.Run(ctx))
		},
	}

	cmd.Flags().IntVar(&sinceDays, "since", 0, "How many days back to look for transcripts (default: config sincedays)")
	return cmd
}
