package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/campuscare/internal/ports/primary"
	"github.com/example/campuscare/internal/wire"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage accounts",
}

var accountAddCmd = &cobra.Command{
	Use:   "add [account-id]",
	Short: "Create or replace an account",
	Long: `Create or replace an account. Students need an 8-digit ID and an academic
department; staff and HODs need a department; admins have none.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		role, _ := cmd.Flags().GetString("role")
		dept, _ := cmd.Flags().GetString("dept")
		password, _ := cmd.Flags().GetString("password")

		adapter, err := wire.AuthAdapter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return adapter.RegisterAccount(context.Background(), primary.RegisterAccountRequest{
			AccountID:  args[0],
			Name:       name,
			Role:       role,
			Department: dept,
			Password:   password,
		})
	},
}

// AccountCmd returns the account command
func AccountCmd() *cobra.Command {
	accountAddCmd.Flags().StringP("name", "n", "", "Display name")
	accountAddCmd.Flags().StringP("role", "r", "", "Role (student, staff, hod, admin)")
	accountAddCmd.Flags().StringP("dept", "d", "", "Department")
	accountAddCmd.Flags().StringP("password", "p", "", "Password")
	_ = accountAddCmd.MarkFlagRequired("name")
	_ = accountAddCmd.MarkFlagRequired("role")
	_ = accountAddCmd.MarkFlagRequired("password")

	accountCmd.AddCommand(accountAddCmd)
	return accountCmd
}
