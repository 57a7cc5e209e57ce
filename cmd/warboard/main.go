package main

import (
	"context"
	"fmt"
	"os"
	"warboard/internal/di"
	"warboard/internal/structures"

	"github.com/spf13/cobra"
)

func main() {
	flags := &structures.CliFlags{}

	root := &cobra.Command{
		Use:          "warboard",
		Short:        "Clan war status board",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := di.InitApp(flags)
			if err != nil {
				return fmt.Errorf("init: %w", err)
			}
			return app.Run(cmd.Context())
		},
	}

	root.Flags().StringVarP(&flags.ConfigPath, "config", "c", "config/config.yaml", "config file path")
	root.Flags().BoolVarP(&flags.DebugMode, "debug", "d", false, "log to console as well")

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
