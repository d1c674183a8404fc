package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tendant/folio/pkg/folio"
	"github.com/tendant/folio/pkg/folio/content"
)

// Manifest is written to <out>/media.json for the site frontend.
type Manifest struct {
	BuildID     string                 `json:"build_id"`
	GeneratedAt time.Time              `json:"generated_at"`
	Projects    map[string]folio.Media `json:"projects"`
}

func newBuildCmd(a *app) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write the media manifest and rendered project pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" {
				outDir = a.cfg.OutDir
			}
			resolver, _, err := a.resolver()
			if err != nil {
				return err
			}
			catalog, err := a.catalog()
			if err != nil {
				return err
			}

			manifest, err := buildSite(cmd.Context(), catalog, resolver, content.NewRenderer(), outDir, a.logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Built %d project(s) into %s (build %s)\n", len(manifest.Projects), outDir, manifest.BuildID)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default from config, \"dist\")")
	return cmd
}

func buildSite(ctx context.Context, catalog *content.Catalog, resolver *folio.Resolver, renderer *content.Renderer, outDir string, logger *slog.Logger) (*Manifest, error) {
	manifest := &Manifest{
		BuildID:     uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Projects:    make(map[string]folio.Media),
	}

	for _, p := range catalog.Projects() {
		manifest.Projects[p.Slug] = resolver.Resolve(ctx, p.Slug, p.Overrides())
		if err := writePage(renderer, filepath.Join(outDir, content.ProjectsDir, p.Slug+".html"), p.Body); err != nil {
			return nil, err
		}
	}
	for _, w := range catalog.Writings() {
		if err := writePage(renderer, filepath.Join(outDir, content.WritingDir, w.Slug+".html"), w.Body); err != nil {
			return nil, err
		}
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "media.json"), append(data, '\n'), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	logger.Info("build complete", "out", outDir, "build_id", manifest.BuildID, "projects", len(manifest.Projects))
	return manifest, nil
}

func writePage(renderer *content.Renderer, path string, body []byte) error {
	html, err := renderer.Render(body)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, html, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
