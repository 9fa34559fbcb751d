package cli

import (
	"github.com/spf13/cobra"

	"github.com/yigit/researchconnect/internal/app/models/dto"
)

func (a *app) problemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "problems",
		Aliases: []string{"problem", "ps"},
		Short:   "Browse and post problem statements",
	}
	cmd.AddCommand(
		a.problemsListCmd(),
		a.problemsSearchCmd(),
		a.problemsGetCmd(),
		a.problemsMineCmd(),
		a.problemsCreateCmd(),
		a.problemsUpdateCmd(),
		a.problemsDeleteCmd(),
	)
	return cmd
}

func (a *app) problemsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every problem statement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.client.ListProblemStatements(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(out)
		},
	}
}

func (a *app) problemsSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <category>",
		Short: "Find problem statements by category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.client.SearchProblemStatements(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printJSON(out)
		},
	}
}

func (a *app) problemsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <psid|id>",
		Short: "Show one problem statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.client.GetProblemStatement(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printJSON(out)
		},
	}
}

func (a *app) problemsMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List the problem statements you posted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.client.ListMyProblemStatements(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(out)
		},
	}
}

func (a *app) problemsCreateCmd() *cobra.Command {
	var req dto.CreateProblemStatementRequest
	var file string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Post a problem statement",
		Long:  "Post a problem statement. The body comes from --file, and flags given on the command line override it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body := req
			if file != "" {
				body = dto.CreateProblemStatementRequest{}
				if err := readPayload(file, &body); err != nil {
					return err
				}
				f := cmd.Flags()
				for flag, dst := range map[string]*string{
					"title":        &body.Title,
					"description":  &body.Description,
					"theme":        &body.Theme,
					"category":     &body.Category,
					"organization": &body.Organization,
				} {
					if f.Changed(flag) {
						*dst, _ = f.GetString(flag)
					}
				}
			}
			out, err := a.client.CreateProblemStatement(cmd.Context(), body)
			if err != nil {
				return err
			}
			return a.printJSON(out)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "", "YAML or JSON file with the problem statement")
	f.StringVar(&req.Title, "title", "", "Short title")
	f.StringVar(&req.Description, "description", "", "Full description")
	f.StringVar(&req.Theme, "theme", "", "Theme")
	f.StringVar(&req.Category, "category", "", "Category")
	f.StringVar(&req.Organization, "organization", "", "Posting organization")
	return cmd
}

func (a *app) problemsUpdateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "update <psid|id>",
		Short: "Change a problem statement you posted",
		Long:  "Change a problem statement you posted. Only the fields in --file and the flags you pass are sent.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req dto.UpdateProblemStatementRequest
			if file != "" {
				if err := readPayload(file, &req); err != nil {
					return err
				}
			}
			f := cmd.Flags()
			for flag, dst := range map[string]**string{
				"title":        &req.Title,
				"description":  &req.Description,
				"theme":        &req.Theme,
				"category":     &req.Category,
				"organization": &req.Organization,
			} {
				if f.Changed(flag) {
					v, _ := f.GetString(flag)
					*dst = &v
				}
			}

			out, err := a.client.UpdateProblemStatement(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			return a.printJSON(out)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "", "YAML or JSON file with the changed fields")
	f.String("title", "", "Short title")
	f.String("description", "", "Full description")
	f.String("theme", "", "Theme")
	f.String("category", "", "Category")
	f.String("organization", "", "Posting organization")
	return cmd
}

func (a *app) problemsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <psid|id>",
		Short: "Delete a problem statement you posted (faculty may delete any)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.client.DeleteProblemStatement(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printJSON(out)
		},
	}
}
