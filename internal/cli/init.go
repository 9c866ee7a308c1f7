package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/campuscare/internal/app"
	"github.com/example/campuscare/internal/config"
	"github.com/example/campuscare/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize campuscare in the current directory",
		Long: `Write .campuscare/config.json, create the sqlite schema and generate a
session signing secret. With --demo, the demo accounts are created as well.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			demo, _ := cmd.Flags().GetBool("demo")

			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			cfg, err := config.LoadConfig(dir)
			if err != nil {
				return err
			}
			if cfg.SessionSecret == "" {
				cfg.SessionSecret = newSecret()
			}
			if err := config.SaveConfig(dir, cfg); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Config written to %s\n", config.Path(dir))

			ctx := context.Background()
			services, err := wire.Build(ctx, cfg, nil)
			if err != nil {
				return err
			}
			defer services.Close()
			fmt.Fprintf(out, "✓ Database initialized at %s\n", cfg.DatabasePath())

			if demo {
				if err := services.Auth.SeedDemoAccounts(ctx); err != nil {
					return fmt.Errorf("failed to seed demo accounts: %w", err)
				}
				fmt.Fprintf(out, "✓ Demo accounts created (password %q)\n", app.DemoPassword)
				for _, a := range app.DemoAccounts {
					fmt.Fprintf(out, "  %-10s %-8s %s\n", a.AccountID, a.Role, a.Name)
				}
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintln(out, "  campuscare login 20232476 --role student --password <password>")
			fmt.Fprintln(out, "  campuscare complaint submit --title \"...\" --description \"...\"")
			return nil
		},
	}
	cmd.Flags().Bool("demo", false, "Create the demo student, staff, HOD and admin accounts")
	return cmd
}

func newSecret() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
