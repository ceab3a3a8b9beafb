package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the zoomvault version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("zoomvault version %s (%s/%s)\n", version, runtime.GOOS, runtime.GOARCH)
		},
	}
}
