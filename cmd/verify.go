package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Verify that the configured Zoom credentials work",
		Long: `Perform a token exchange against the Zoom OAuth endpoint with the
configured server-to-server credentials and report the result. No
meeting data is read and nothing is written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(),
				syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a := newApp(cfg, nil)

			if err := a.syncer.VerifyCredentials(ctx); err != nil {
				return fmt.Errorf("credential verification failed: %w", err)
			}
			fmt.Println("credentials verified")
			return nil
		},
	}
}
