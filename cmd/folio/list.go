package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tendant/folio/pkg/folio/content"
)

func newListCmd(a *app) *cobra.Command {
	var kind string
	var featured bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.catalog()
			if err != nil {
				return err
			}

			var projects []*content.Project
			switch {
			case kind != "":
				if !content.ValidKind(content.Kind(kind)) {
					return fmt.Errorf("invalid kind %q (want one of %v)", kind, content.Kinds)
				}
				projects = catalog.ProjectsByKind(content.Kind(kind))
			case featured:
				projects = catalog.FeaturedProjects()
			default:
				projects = catalog.Projects()
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SLUG\tKIND\tYEAR\tORDER\tTITLE")
			for _, p := range projects {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%s\n", p.Slug, p.Kind, p.Year, p.Order, p.Title)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "only list projects of this kind (research, installation, experiment)")
	cmd.Flags().BoolVar(&featured, "featured", false, "only list featured projects")
	return cmd
}
