package cli

import (
	"github.com/spf13/cobra"

	"github.com/yigit/researchconnect/internal/app/models"
)

func (a *app) roadmapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roadmap",
		Short: "Research and placement roadmaps",
	}

	prefs := &cobra.Command{
		Use:   "prefs",
		Short: "Show your research questionnaire",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printResult(a.client.Preferences(cmd.Context()))
		},
	}

	var prefsFile string
	setPrefs := &cobra.Command{
		Use:   "set-prefs",
		Short: "Save your research questionnaire from --file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var p models.RoadmapPreferences
			if err := readPayload(prefsFile, &p); err != nil {
				return err
			}
			return a.printResult(a.client.SavePreferences(cmd.Context(), p))
		},
	}
	setPrefs.Flags().StringVarP(&prefsFile, "file", "f", "", "YAML or JSON file with the questionnaire")
	_ = setPrefs.MarkFlagRequired("file")

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate a research roadmap from your questionnaire",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printResult(a.client.GenerateRoadmap(cmd.Context()))
		},
	}

	history := &cobra.Command{
		Use:   "history",
		Short: "List the roadmaps generated for you",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printResult(a.client.RoadmapHistory(cmd.Context()))
		},
	}

	placementPrefs := &cobra.Command{
		Use:   "placement-prefs",
		Short: "Show your placement questionnaire",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printResult(a.client.PlacementPreferences(cmd.Context()))
		},
	}

	var placementFile string
	setPlacementPrefs := &cobra.Command{
		Use:   "set-placement-prefs",
		Short: "Save your placement questionnaire from --file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var p models.PlacementPreferences
			if err := readPayload(placementFile, &p); err != nil {
				return err
			}
			return a.printResult(a.client.SavePlacementPreferences(cmd.Context(), p))
		},
	}
	setPlacementPrefs.Flags().StringVarP(&placementFile, "file", "f", "", "YAML or JSON file with the questionnaire")
	_ = setPlacementPrefs.MarkFlagRequired("file")

	generatePlacement := &cobra.Command{
		Use:   "generate-placement",
		Short: "Generate a placement roadmap from your questionnaire",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printResult(a.client.GeneratePlacementRoadmap(cmd.Context()))
		},
	}

	cmd.AddCommand(prefs, setPrefs, generate, history, placementPrefs, setPlacementPrefs, generatePlacement)
	return cmd
}
