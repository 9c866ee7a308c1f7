package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/campuscare/internal/core/complaint"
	"github.com/example/campuscare/internal/ports/primary"
	"github.com/example/campuscare/internal/wire"
)

// LoginCmd returns the login command
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login [account-id]",
		Short: "Sign in with an account ID, role and password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, _ := cmd.Flags().GetString("role")
			password, _ := cmd.Flags().GetString("password")

			adapter, err := wire.AuthAdapter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Login(context.Background(), primary.LoginRequest{
				AccountID: args[0],
				Role:      role,
				Password:  password,
			})
		},
	}
	cmd.Flags().StringP("role", "r", "", "Role to sign in as (student, staff, hod, admin)")
	cmd.Flags().StringP("password", "p", "", "Password")
	_ = cmd.MarkFlagRequired("role")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// LogoutCmd returns the logout command
func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.AuthAdapter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Logout()
		},
	}
}

// WhoAmICmd returns the whoami command
func WhoAmICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.AuthAdapter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.WhoAmI(context.Background())
		},
	}
}

// currentSession resolves the signed-in session for commands that need one.
func currentSession(ctx context.Context, cmd *cobra.Command) (complaint.Session, error) {
	adapter, err := wire.AuthAdapter(cmd.OutOrStdout())
	if err != nil {
		return complaint.Session{}, err
	}
	return adapter.Current(ctx)
}
