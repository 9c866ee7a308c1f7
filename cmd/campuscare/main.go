package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/campuscare/internal/cli"
	"github.com/example/campuscare/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "campuscare",
		Short:   "CampusCare - campus grievance tracker",
		Version: version.String(),
		Long: `CampusCare routes student complaints to the responsible department and
escalates them from staff to the head of department to the administration.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.AccountCmd())
	rootCmd.AddCommand(cli.LoginCmd())
	rootCmd.AddCommand(cli.LogoutCmd())
	rootCmd.AddCommand(cli.WhoAmICmd())
	rootCmd.AddCommand(cli.ComplaintCmd())
	rootCmd.AddCommand(cli.AnalyticsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
