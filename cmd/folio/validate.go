package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tendant/folio/pkg/folio/content"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check document frontmatter against the content schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			issues, err := content.Validate(a.cfg.ContentDir)
			if err != nil {
				return err
			}
			if len(issues) > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "Frontmatter issues found:")
				for _, issue := range issues {
					fmt.Fprintf(cmd.ErrOrStderr(), "- %s\n", issue)
				}
				return fmt.Errorf("%d frontmatter issue(s)", len(issues))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Frontmatter checks passed.")
			return nil
		},
	}
}
