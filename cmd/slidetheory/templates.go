package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/blakehenkel24-eng/slidetheory/internal/types"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the slide template catalogue",
	RunE:  runTemplates,
}

var (
	templatesCategory string
	templatesJSON     bool
)

func init() {
	templatesCmd.Flags().StringVarP(&templatesCategory, "category", "c", "", "Only list templates in this category")
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	templates := types.Templates()
	if templatesCategory != "" {
		templates = types.TemplatesByCategory(templatesCategory)
	}

	if templatesJSON {
		if templates == nil {
			templates = []types.SlideTemplate{}
		}
		return writeJSON(cmd.OutOrStdout(), "", templates)
	}

	if len(templates) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No templates in category %q\n", templatesCategory)
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tDESCRIPTION")
	for _, t := range templates {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Category, t.Description)
	}
	return tw.Flush()
}
