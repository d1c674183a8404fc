package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/tendant/folio/pkg/folio"
)

func newResolveCmd(a *app) *cobra.Command {
	var conventionOnly bool

	cmd := &cobra.Command{
		Use:   "resolve <slug>",
		Short: "Print the resolved media of a project as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := args[0]
			if !folio.ValidSlug(slug) {
				return folio.ErrInvalidSlug
			}

			resolver, _, err := a.resolver()
			if err != nil {
				return err
			}

			var overrides folio.Overrides
			if !conventionOnly {
				catalog, err := a.catalog()
				if err != nil {
					return err
				}
				p, err := catalog.ProjectBySlug(slug)
				switch {
				case err == nil:
					overrides = p.Overrides()
				case errors.Is(err, folio.ErrProjectNotFound):
					a.logger.Warn("no project document for slug, using conventions only", "slug", slug)
				default:
					return err
				}
			}

			media := resolver.Resolve(cmd.Context(), slug, overrides)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(media)
		},
	}

	cmd.Flags().BoolVar(&conventionOnly, "conventions-only", false, "ignore frontmatter overrides")
	return cmd
}
