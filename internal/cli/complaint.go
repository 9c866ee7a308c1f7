package cli

import (
	"context"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/campuscare/internal/adapters/cli"
	"github.com/example/campuscare/internal/core/complaint"
	"github.com/example/campuscare/internal/ports/primary"
	"github.com/example/campuscare/internal/wire"
)

var complaintCmd = &cobra.Command{
	Use:     "complaint",
	Aliases: []string{"c"},
	Short:   "Lodge, review and act on complaints",
}

// withComplaints resolves the session and adapter, then runs fn.
func withComplaints(cmd *cobra.Command, fn func(ctx context.Context, s complaint.Session, a *cliadapter.ComplaintAdapter) error) error {
	ctx := context.Background()
	session, err := currentSession(ctx, cmd)
	if err != nil {
		return err
	}
	adapter, err := wire.ComplaintAdapter(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return fn(ctx, session, adapter)
}

var complaintSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Lodge a new complaint (students only)",
	Long: `Lodge a new complaint. The category decides which department handles it;
when omitted it is inferred from the text. Student ID, name and department
default to the signed-in account.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		category, _ := cmd.Flags().GetString("category")
		studentID, _ := cmd.Flags().GetString("student-id")
		name, _ := cmd.Flags().GetString("name")
		dept, _ := cmd.Flags().GetString("dept")

		return withComplaints(cmd, func(ctx context.Context, s complaint.Session, a *cliadapter.ComplaintAdapter) error {
			return a.Submit(ctx, s, primary.SubmitComplaintRequest{
				StudentID:   orDefault(studentID, s.ID),
				StudentName: orDefault(name, s.Name),
				StudentDept: orDefault(dept, string(s.Department)),
				Category:    category,
				Title:       title,
				Description: description,
			})
		})
	},
}

var complaintListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the complaints you can see, highest priority first",
	RunE: func(cmd *cobra.Command, args []string) error {
		tab, _ := cmd.Flags().GetString("tab")
		queue, _ := cmd.Flags().GetBool("queue")

		return withComplaints(cmd, func(ctx context.Context, s complaint.Session, a *cliadapter.ComplaintAdapter) error {
			return a.List(ctx, s, primary.ComplaintFilters{Tab: tab, Queue: queue})
		})
	},
}

var complaintShowCmd = &cobra.Command{
	Use:   "show [complaint-id]",
	Short: "Show complaint details and escalation history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withComplaints(cmd, func(ctx context.Context, s complaint.Session, a *cliadapter.ComplaintAdapter) error {
			return a.Show(ctx, s, args[0])
		})
	},
}

var complaintStartCmd = &cobra.Command{
	Use:   "start [complaint-id]",
	Short: "Mark a complaint as in progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		remarks, _ := cmd.Flags().GetString("remarks")
		return withComplaints(cmd, func(ctx context.Context, s complaint.Session, a *cliadapter.ComplaintAdapter) error {
			return a.Start(ctx, s, args[0], remarks)
		})
	},
}

var complaintResolveCmd = &cobra.Command{
	Use:   "resolve [complaint-id]",
	Short: "Resolve a complaint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		remarks, _ := cmd.Flags().GetString("remarks")
		return withComplaints(cmd, func(ctx context.Context, s complaint.Session, a *cliadapter.ComplaintAdapter) error {
			return a.Resolve(ctx, s, args[0], remarks)
		})
	},
}

var complaintEscalateCmd = &cobra.Command{
	Use:   "escalate [complaint-id]",
	Short: "Escalate a complaint to the next tier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reason, _ := cmd.Flags().GetString("reason")
		return withComplaints(cmd, func(ctx context.Context, s complaint.Session, a *cliadapter.ComplaintAdapter) error {
			return a.Escalate(ctx, s, args[0], reason)
		})
	},
}

var complaintFeedbackCmd = &cobra.Command{
	Use:   "feedback [complaint-id]",
	Short: "Rate how your resolved complaint was handled",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rating, _ := cmd.Flags().GetInt("rating")
		comment, _ := cmd.Flags().GetString("comment")
		return withComplaints(cmd, func(ctx context.Context, s complaint.Session, a *cliadapter.ComplaintAdapter) error {
			return a.Feedback(ctx, s, args[0], rating, comment)
		})
	},
}

// ComplaintCmd returns the complaint command
func ComplaintCmd() *cobra.Command {
	complaintSubmitCmd.Flags().StringP("title", "t", "", "Complaint title")
	complaintSubmitCmd.Flags().StringP("description", "d", "", "What happened")
	complaintSubmitCmd.Flags().StringP("category", "c", "", "Infrastructure, Academics, Ragging, Administration, Staff-related or Others")
	complaintSubmitCmd.Flags().String("student-id", "", "Student register number (default: signed-in account)")
	complaintSubmitCmd.Flags().String("name", "", "Student name (default: signed-in account)")
	complaintSubmitCmd.Flags().String("dept", "", "Student department (default: signed-in account)")
	_ = complaintSubmitCmd.MarkFlagRequired("title")
	_ = complaintSubmitCmd.MarkFlagRequired("description")

	complaintListCmd.Flags().String("tab", "active", "Tab to show (active, escalated, resolved)")
	complaintListCmd.Flags().Bool("queue", false, "Show the admin escalation queue")

	complaintStartCmd.Flags().String("remarks", "", "Remarks for the student")
	complaintResolveCmd.Flags().String("remarks", "", "Resolution remarks")
	complaintEscalateCmd.Flags().String("reason", "", "Why the complaint needs the next tier")
	_ = complaintEscalateCmd.MarkFlagRequired("reason")
	complaintFeedbackCmd.Flags().Int("rating", 0, "Rating from 1 to 5")
	complaintFeedbackCmd.Flags().String("comment", "", "Optional comment")
	_ = complaintFeedbackCmd.MarkFlagRequired("rating")

	complaintCmd.AddCommand(complaintSubmitCmd)
	complaintCmd.AddCommand(complaintListCmd)
	complaintCmd.AddCommand(complaintShowCmd)
	complaintCmd.AddCommand(complaintStartCmd)
	complaintCmd.AddCommand(complaintResolveCmd)
	complaintCmd.AddCommand(complaintEscalateCmd)
	complaintCmd.AddCommand(complaintFeedbackCmd)

	return complaintCmd
}

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
