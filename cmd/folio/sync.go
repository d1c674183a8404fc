package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tendant/folio/pkg/folio/content"
	"github.com/tendant/folio/pkg/folio/mediasync"
)

func newSyncCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Rewrite project media frontmatter from the asset tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, source, err := a.resolver()
			if err != nil {
				return err
			}

			scanner := mediasync.New(filepath.Join(a.cfg.ContentDir, content.ProjectsDir), a.logger)
			result, err := scanner.Scan(cmd.Context(), mediasync.ScanOptions{
				Processor: mediasync.NewMediaSync(resolver, source, a.logger),
				DryRun:    dryRun,
			})
			if err != nil {
				return err
			}

			verb := "Updated"
			if dryRun {
				verb = "Would update"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Done. %s %d file(s), skipped %d, failed %d.\n",
				verb, result.TotalUpdated, result.TotalSkipped, result.TotalFailed)
			if result.TotalFailed > 0 {
				return fmt.Errorf("%d document(s) failed: %v", result.TotalFailed, result.FailedPaths)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without writing files")
	return cmd
}
