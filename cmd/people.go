package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/labsite/labsite/format"
)

var (
	peopleFormat string
	peopleOutput string
	peoplePretty bool
)

var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "Render the people directory",
	Long: `Load the roster and every member's biography and render the directory.

Biographies load concurrently; a missing biography leaves that member's
position, links and intro empty.

Examples:
  labsite people
  labsite people --format json
  labsite people --pretty
  labsite people -o people.html`,
	Args: cobra.NoArgs,
	RunE: runPeople,
}

func init() {
	peopleCmd.Flags().StringVarP(&peopleFormat, "format", "f", "", "Output format (html, markdown, text, json)")
	peopleCmd.Flags().StringVarP(&peopleOutput, "output", "o", "", "Output file (default: stdout)")
	peopleCmd.Flags().BoolVar(&peoplePretty, "pretty", false, "Style Markdown output for the terminal")
}

func runPeople(cmd *cobra.Command, args []string) error {
	name, err := outputFormat(peopleFormat, peopleOutput, peoplePretty)
	if err != nil {
		return err
	}
	renderer, err := format.GetPeopleRenderer(name)
	if err != nil {
		return err
	}

	dir, err := newLoader(cfg).People(cmd.Context())
	if err != nil {
		return err
	}

	opts := format.NewRenderOptions()
	opts.AssetBase = assetBase(cfg, outputDir(peopleOutput))

	return writeOutput(peopleOutput, peoplePretty, func(w io.Writer) error {
		return renderer.RenderPeople(w, dir, opts)
	})
}
