package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/campuscare/internal/wire"
)

// AnalyticsCmd returns the analytics command
func AnalyticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show institution-wide complaint statistics (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session, err := currentSession(ctx, cmd)
			if err != nil {
				return err
			}
			adapter, err := wire.AnalyticsAdapter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Show(ctx, session)
		},
	}
}
