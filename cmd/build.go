package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/labsite/labsite/format"
	"github.com/labsite/labsite/publication"
	"github.com/labsite/labsite/site"
)

var (
	buildOutDir string
	buildWatch  bool
	buildSort   string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write the static people and publications pages",
	Long: `Render people.html and publications.html into the output directory.

Photos and icons are referenced from the resource root, not copied. With
--watch the pages are rebuilt from scratch whenever a file below a local
resource root changes.

Examples:
  labsite build -o public
  labsite build -o public --watch
  labsite build -r https://lab.example.org/Resources -o public`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "output", "o", "public", "Output directory")
	buildCmd.Flags().BoolVarP(&buildWatch, "watch", "w", false, "Rebuild when local resources change")
	buildCmd.Flags().StringVarP(&buildSort, "sort", "s", "", "Publication sort key (year-desc, year-asc, title-asc)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	key, err := publication.ParseSortKey(buildSort)
	if err != nil {
		return err
	}
	if buildWatch && cfg.IsRemote() {
		return fmt.Errorf("--watch needs a local resource directory, not %s", cfg.Resources)
	}

	loader := newLoader(cfg)
	render := format.NewRenderOptions()
	render.AssetBase = assetBase(cfg, buildOutDir)
	opts := site.BuildOptions{Render: render, View: publication.ViewOptions{Sort: key}}

	build := func(ctx context.Context) error {
		return loader.Build(ctx, buildOutDir, opts)
	}

	if err := build(cmd.Context()); err != nil {
		if !buildWatch {
			return err
		}
		slog.Error("initial build incomplete", "err", err)
	}

	if !buildWatch {
		return nil
	}
	return site.Watch(cmd.Context(), cfg.Resources, site.WatchOptions{Ignore: buildOutDir}, build)
}
