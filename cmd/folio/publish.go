package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tendant/folio/pkg/folio/config"
	s3storage "github.com/tendant/folio/pkg/folio/storage/s3"
)

func newPublishCmd(a *app) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "publish --to s3://bucket?region=...",
		Short: "Upload the project asset tree to an S3 bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, err := config.ParseAssetURL(to)
			if err != nil {
				return err
			}
			if dest.Type != "s3" {
				return fmt.Errorf("publish target must be an s3:// URL, got %q", to)
			}
			bucket, err := s3storage.New(dest.S3)
			if err != nil {
				return err
			}

			source, err := a.cfg.BuildSource()
			if err != nil {
				return err
			}

			dir := a.cfg.Conventions.SourceDir
			if dir == "" {
				dir = "projects"
			}
			n, err := bucket.Publish(cmd.Context(), source, dir)
			if err != nil {
				return fmt.Errorf("publish stopped after %d file(s): %w", n, err)
			}
			a.logger.Info("published assets", "bucket", dest.S3.Bucket, "files", n)
			fmt.Fprintf(cmd.OutOrStdout(), "Published %d file(s) to %s\n", n, dest.S3.Bucket)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "destination bucket URL")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
