package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/app/models/dto"
)

func (a *app) applyCmd() *cobra.Command {
	var req dto.ApplyRequest
	var file string
	cmd := &cobra.Command{
		Use:   "apply <pid>",
		Short: "Apply to a project (students)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := req
			if file != "" {
				if err := readPayload(file, &body); err != nil {
					return err
				}
			}
			out, err := a.client.Apply(cmd.Context(), args[0], body)
			if err != nil {
				return err
			}
			return a.printJSON(out)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "", "YAML or JSON file with the application")
	f.StringVar(&req.Availability, "availability", "", "When you can work on the project")
	f.StringVar(&req.Motivation, "motivation", "", "Why you want to join")
	f.StringVar(&req.PriorProjects, "prior-projects", "", "Relevant previous work")
	f.StringVar(&req.CVLink, "cv", "", "Link to your CV")
	f.StringVar(&req.PublicationsLink, "publications", "", "Link to your publications")
	return cmd
}

func (a *app) retractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retract <pid>",
		Short: "Withdraw your application to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.message(a.client.Retract(cmd.Context(), args[0]))
		},
	}
}

func (a *app) applicationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "applications",
		Aliases: []string{"apps"},
		Short:   "Track and review applications",
	}

	mine := &cobra.Command{
		Use:   "mine",
		Short: "List your applications with their projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printResult(a.client.MyApplications(cmd.Context()))
		},
	}
	applied := &cobra.Command{
		Use:   "applied",
		Short: "List the projects you applied to and their status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printResult(a.client.MyAppliedProjects(cmd.Context()))
		},
	}
	all := &cobra.Command{
		Use:   "all",
		Short: "List applications to all your projects (faculty)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printResult(a.client.AllApplications(cmd.Context()))
		},
	}
	status := &cobra.Command{
		Use:   "status <pid>",
		Short: "Show whether you applied to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printResult(a.client.ApplicationStatus(cmd.Context(), args[0]))
		},
	}
	past := &cobra.Command{
		Use:   "past <pid>",
		Short: "List decided applicants of a project you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printResult(a.client.PastApplicants(cmd.Context(), args[0]))
		},
	}
	setStatus := &cobra.Command{
		Use:   "set-status <pid> <application-id> <status>",
		Short: "Move an application to a new status (faculty)",
		Long:  fmt.Sprintf("Move an application to a new status. Valid statuses: %v", models.ApplicationStatuses),
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseApplicationID(args[1])
			if err != nil {
				return err
			}
			status := models.ApplicationStatus(args[2])
			if !status.IsValid() {
				return fmt.Errorf("invalid status %q", args[2])
			}
			return a.printResult(a.client.UpdateApplicationStatus(cmd.Context(), args[0], id, status))
		},
	}

	feedback := &cobra.Command{
		Use:   "feedback <pid> <application-id> <text>",
		Short: "Send feedback to an applicant (faculty)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseApplicationID(args[1])
			if err != nil {
				return err
			}
			return a.message(a.client.SendFeedback(cmd.Context(), args[0], id, args[2]))
		},
	}

	var interview dto.InterviewRequest
	schedule := &cobra.Command{
		Use:   "interview <pid> <application-id>",
		Short: "Schedule an interview with an applicant (faculty)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseApplicationID(args[1])
			if err != nil {
				return err
			}
			return a.printResult(a.client.ScheduleInterview(cmd.Context(), args[0], id, interview))
		},
	}
	schedule.Flags().StringVar(&interview.InterviewDate, "date", "", "Interview date")
	schedule.Flags().StringVar(&interview.InterviewTime, "time", "", "Interview time")
	schedule.Flags().StringVar(&interview.InterviewDetails, "details", "", "Location or call link")
	_ = schedule.MarkFlagRequired("date")
	_ = schedule.MarkFlagRequired("time")

	cmd.AddCommand(mine, applied, all, status, past, setStatus, feedback, schedule)
	return cmd
}

func parseApplicationID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid application id %q", s)
	}
	return uint(id), nil
}
