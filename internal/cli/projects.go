package cli

import (
	"github.com/spf13/cobra"

	"github.com/yigit/researchconnect/internal/app/models/dto"
	"github.com/yigit/researchconnect/internal/pkg/helpers"
)

func (a *app) projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Browse and manage research projects",
	}
	cmd.AddCommand(
		a.projectsListCmd(),
		a.projectsStudentCmd(),
		a.projectsMineCmd(),
		a.projectsGetCmd(),
		a.projectsCreateCmd(),
		a.projectsUpdateCmd(),
		a.projectsDeleteCmd(),
		a.projectsMembersCmd(),
		a.projectsRemoveMemberCmd(),
	)
	return cmd
}

func (a *app) projectsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.client.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(out)
		},
	}
}

func (a *app) projectsStudentCmd() *cobra.Command {
	var page, pageSize int
	cmd := &cobra.Command{
		Use:   "student",
		Short: "List open projects and the ones you applied to (students)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.client.ListStudentProjects(cmd.Context(), page, pageSize)
			if err != nil {
				return err
			}
			return a.printJSON(out)
		},
	}
	cmd.Flags().IntVar(&page, "page", helpers.DefaultPage, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", helpers.DefaultPageSize, "Projects per page")
	return cmd
}

func (a *app) projectsMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List the projects you created",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.client.ListMyProjects(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(out)
		},
	}
}

func (a *app) projectsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <pid>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.client.GetProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printJSON(out)
		},
	}
}

func (a *app) projectsCreateCmd() *cobra.Command {
	var req dto.CreateProjectRequest
	var file string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Post a new project (faculty)",
		Long:  "Post a new project. The body comes from --file, and flags given on the command line override it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body := req
			if file != "" {
				body = dto.CreateProjectRequest{IsActive: true}
				if err := readPayload(file, &body); err != nil {
					return err
				}
				overlayCreate(cmd, &body, req)
			}
			out, err := a.client.CreateProject(cmd.Context(), body)
			if err != nil {
				return err
			}
			return a.printJSON(out)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "", "YAML or JSON file with the project")
	f.StringVar(&req.Name, "name", "", "Project name")
	f.StringVar(&req.ShortDesc, "sdesc", "", "Short description")
	f.StringVar(&req.LongDesc, "ldesc", "", "Long description")
	f.BoolVar(&req.IsActive, "active", true, "Accept applications")
	f.StringSliceVar(&req.Tags, "tags", nil, "Tags")
	f.StringVar(&req.FieldOfStudy, "field", "", "Field of study")
	f.StringVar(&req.Deadline, "deadline", "", "Application deadline (YYYY-MM-DD)")
	return cmd
}

func overlayCreate(cmd *cobra.Command, body *dto.CreateProjectRequest, flags dto.CreateProjectRequest) {
	f := cmd.Flags()
	if f.Changed("name") {
		body.Name = flags.Name
	}
	if f.Changed("sdesc") {
		body.ShortDesc = flags.ShortDesc
	}
	if f.Changed("ldesc") {
		body.LongDesc = flags.LongDesc
	}
	if f.Changed("active") {
		body.IsActive = flags.IsActive
	}
	if f.Changed("tags") {
		body.Tags = flags.Tags
	}
	if f.Changed("field") {
		body.FieldOfStudy = flags.FieldOfStudy
	}
	if f.Changed("deadline") {
		body.Deadline = flags.Deadline
	}
}

func (a *app) projectsUpdateCmd() *cobra.Command {
	var file, name, sdesc, ldesc, deadline string
	var active bool
	var tags []string
	cmd := &cobra.Command{
		Use:   "update <pid>",
		Short: "Change a project you own",
		Long:  "Change a project you own. Only the fields in --file and the flags you pass are sent.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req dto.UpdateProjectRequest
			if file != "" {
				if err := readPayload(file, &req); err != nil {
					return err
				}
			}
			f := cmd.Flags()
			if f.Changed("name") {
				req.Name = &name
			}
			if f.Changed("sdesc") {
				req.ShortDesc = &sdesc
			}
			if f.Changed("ldesc") {
				req.LongDesc = &ldesc
			}
			if f.Changed("active") {
				req.IsActive = &active
			}
			if f.Changed("tags") {
				req.Tags = &tags
			}
			if f.Changed("deadline") {
				req.Deadline = &deadline
			}

			out, err := a.client.UpdateProject(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			return a.printJSON(out)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "", "YAML or JSON file with the changed fields")
	f.StringVar(&name, "name", "", "Project name")
	f.StringVar(&sdesc, "sdesc", "", "Short description")
	f.StringVar(&ldesc, "ldesc", "", "Long description")
	f.BoolVar(&active, "active", true, "Accept applications")
	f.StringSliceVar(&tags, "tags", nil, "Tags")
	f.StringVar(&deadline, "deadline", "", "Application deadline")
	return cmd
}

func (a *app) projectsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <pid>",
		Short: "Delete a project you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.client.DeleteProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printJSON(out)
		},
	}
}

func (a *app) projectsMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members <pid>",
		Short: "List the project team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.client.ListWorkingUsers(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printJSON(out)
		},
	}
}

func (a *app) projectsRemoveMemberCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-member <pid> <uid>",
		Short: "Take a member off a project you own",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.message(a.client.RemoveWorkingUser(cmd.Context(), args[0], args[1]))
		},
	}
}
