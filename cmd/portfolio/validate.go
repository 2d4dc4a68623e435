package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"ruo.dev/internal/config"
	"ruo.dev/internal/content"
	"ruo.dev/internal/filter"
	"ruo.dev/internal/models"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a portfolio content document",
	Long:  "Checks a JSON or YAML content document against the schema and field rules, then prints what each timeline filter and the project gallery would show.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	path := cfg.ContentPath
	if len(args) == 1 {
		path = args[0]
	}
	return validateContent(cmd.OutOrStdout(), path, cfg.BootcampIDs)
}

// validateContent loads path and writes a summary to w
func validateContent(w io.Writer, path string, extraBootcampIDs []string) error {
	portfolio, err := content.Load(path)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	bootcamp := filter.NewBootcampSet(slices.Concat(portfolio.Filters.BootcampIDs, extraBootcampIDs)...)
	counts := filter.Counts(portfolio.Timeline, bootcamp)

	_, _ = fmt.Fprintf(w, "Validation passed: %s\n", path)
	_, _ = fmt.Fprintf(w, "\nTimeline (%d entries)\n", len(portfolio.Timeline))
	for _, c := range filter.Categories {
		marker := ""
		if c == filter.DefaultCategory {
			marker = " (default)"
		}
		_, _ = fmt.Fprintf(w, "  %-14s %d%s\n", c, counts[c], marker)
	}
	if ids := bootcamp.IDs(); len(ids) > 0 {
		slices.Sort(ids)
		_, _ = fmt.Fprintf(w, "  bootcamp ids:  %s\n", strings.Join(ids, ", "))
	}

	partition := filter.PartitionProjects(portfolio.Projects)
	_, _ = fmt.Fprintf(w, "\nProjects (%d)\n", len(portfolio.Projects))
	writeProjects(w, "featured", partition.Featured)
	writeProjects(w, "other", partition.Other)
	return nil
}

func writeProjects(w io.Writer, label string, projects []models.Project) {
	_, _ = fmt.Fprintf(w, "  %s:\n", label)
	if len(projects) == 0 {
		_, _ = fmt.Fprintln(w, "    (none)")
		return
	}
	for _, p := range projects {
		_, _ = fmt.Fprintf(w, "    %3d  %-20s %s\n", p.Rank(), p.ID, p.Title.Resolve(models.DefaultLang))
	}
}
