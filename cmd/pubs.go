package cmd

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/labsite/labsite/format"
	"github.com/labsite/labsite/publication"
)

var (
	pubsFormat string
	pubsOutput string
	pubsSort   string
	pubsFilter string
	pubsPretty bool
)

var pubsCmd = &cobra.Command{
	Use:   "pubs",
	Short: "Render the publication list",
	Long: `Parse the BibTeX catalog and render IEEE-style citations, grouped into
journal and conference papers and numbered from [1] within each group.

Sort keys:
  year-desc   newest first
  year-asc    oldest first
  title-asc   by title
  (default)   catalog order

Examples:
  labsite pubs
  labsite pubs --sort year-desc --filter "zhang"
  labsite pubs --format json
  labsite pubs --format bibtex -o refs.bib`,
	Args: cobra.NoArgs,
	RunE: runPubs,
}

func init() {
	pubsCmd.Flags().StringVarP(&pubsFormat, "format", "f", "", "Output format (html, markdown, text, json, bibtex)")
	pubsCmd.Flags().StringVarP(&pubsOutput, "output", "o", "", "Output file (default: stdout)")
	pubsCmd.Flags().StringVarP(&pubsSort, "sort", "s", "", "Sort key (year-desc, year-asc, title-asc)")
	pubsCmd.Flags().StringVarP(&pubsFilter, "filter", "q", "", "Only entries whose title, authors or venue contain this text")
	pubsCmd.Flags().BoolVar(&pubsPretty, "pretty", false, "Style Markdown output for the terminal")
}

func runPubs(cmd *cobra.Command, args []string) error {
	key, err := publication.ParseSortKey(pubsSort)
	if err != nil {
		return err
	}

	name, err := outputFormat(pubsFormat, pubsOutput, pubsPretty)
	if err != nil {
		return err
	}
	renderer, err := format.GetPublicationRenderer(name)
	if err != nil {
		return err
	}

	page, err := newLoader(cfg).Publications(cmd.Context(), publication.ViewOptions{Sort: key, Query: pubsFilter})
	if err != nil {
		return errors.New(page.Status)
	}
	slog.Info(page.Status)

	opts := format.NewRenderOptions()
	opts.AssetBase = assetBase(cfg, outputDir(pubsOutput))

	return writeOutput(pubsOutput, pubsPretty, func(w io.Writer) error {
		return renderer.RenderPublications(w, page, opts)
	})
}

func outputDir(outputFile string) string {
	if outputFile == "" {
		return ""
	}
	return filepath.Dir(outputFile)
}
