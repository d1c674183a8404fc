package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tendant/folio/pkg/folio"
	"github.com/tendant/folio/pkg/folio/config"
	"github.com/tendant/folio/pkg/folio/content"
)

// app carries the state shared by all subcommands once the root command
// has loaded configuration.
type app struct {
	configFile string
	contentDir string
	publicDir  string
	assetURL   string

	cfg    *config.ServerConfig
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "folio",
		Short: "Project media tooling for a file-backed portfolio site",
		Long: `folio resolves the media of portfolio projects (cover image, gallery,
video and PDF) from frontmatter overrides and the public/projects/<slug>/
asset tree, keeps frontmatter in sync with it, validates documents and
serves or builds the result.

Configuration is read from --config (YAML) and FOLIO_* environment
variables; flags win over both.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (YAML)")
	root.PersistentFlags().StringVar(&a.contentDir, "content", "", "content directory (default \"content\")")
	root.PersistentFlags().StringVar(&a.publicDir, "public", "", "public asset directory (default \"public\")")
	root.PersistentFlags().StringVar(&a.assetURL, "assets", "", "asset source URL (memory://, file://..., s3://...)")

	root.AddCommand(
		newResolveCmd(a),
		newSyncCmd(a),
		newValidateCmd(a),
		newBuildCmd(a),
		newServeCmd(a),
		newListCmd(a),
		newPublishCmd(a),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	opts := []config.Option{config.WithFile(a.configFile), config.WithEnv()}
	if a.contentDir != "" {
		opts = append(opts, config.WithContentDir(a.contentDir))
	}
	if a.publicDir != "" {
		opts = append(opts, config.WithFilesystemSource(a.publicDir))
	}
	if a.assetURL != "" {
		opts = append(opts, config.WithAssetURL(a.assetURL))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cfg.NewLogger(cmd.ErrOrStderr())
	slog.SetDefault(a.logger)
	return nil
}

func (a *app) resolver() (*folio.Resolver, folio.AssetReader, error) {
	return a.cfg.BuildResolver(a.logger)
}

func (a *app) catalog() (*content.Catalog, error) {
	return content.Load(a.cfg.ContentDir, a.logger)
}
