package cli

import (
	"github.com/spf13/cobra"

	"github.com/yigit/researchconnect/internal/apiclient"
	"github.com/yigit/researchconnect/internal/app/models"
)

func (a *app) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Student profiles and discovery",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show your student profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printResult(a.client.StudentProfile(cmd.Context()))
		},
	}

	var file string
	update := &cobra.Command{
		Use:   "update",
		Short: "Replace your student profile with the contents of --file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var profile models.StudentProfile
			if err := readPayload(file, &profile); err != nil {
				return err
			}
			return a.printResult(a.client.UpdateStudentProfile(cmd.Context(), profile))
		},
	}
	update.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON file with the profile")
	_ = update.MarkFlagRequired("file")

	user := &cobra.Command{
		Use:   "user <uid>",
		Short: "Show someone's public profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printResult(a.client.UserProfile(cmd.Context(), args[0]))
		},
	}

	var userType, search string
	explore := &cobra.Command{
		Use:   "explore",
		Short: "Find students and faculty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := apiclient.ExploreFilter{Type: models.UserType(userType), Search: search}
			return a.printResult(a.client.Explore(cmd.Context(), filter))
		},
	}
	explore.Flags().StringVar(&userType, "type", "", "Only stu or fac")
	explore.Flags().StringVarP(&search, "search", "s", "", "Match name, institution, skills or interests")

	recs := &cobra.Command{
		Use:   "recommendations",
		Short: "Projects that match your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printResult(a.client.Recommendations(cmd.Context()))
		},
	}

	cmd.AddCommand(show, update, user, explore, recs)
	return cmd
}
