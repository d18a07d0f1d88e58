package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/labsite/labsite/config"
	"github.com/labsite/labsite/fetch"
	"github.com/labsite/labsite/format"
	"github.com/labsite/labsite/site"
)

const defaultFormat = "text"

func newLoader(c *config.Config) *site.Loader {
	l := site.NewLoader(fetch.New(c.Resources, fetch.WithTimeout(c.HTTP.Timeout())))
	l.RosterPath = c.Paths.Roster
	l.CatalogPath = c.Paths.Publications
	return l
}

// assetBase returns the prefix for photo and icon URLs in pages written to
// outDir. Local resources are referenced relative to outDir.
func assetBase(c *config.Config, outDir string) string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	if c.IsRemote() || outDir == "" {
		return strings.TrimRight(c.Resources, "/") + "/"
	}

	absRes, err := filepath.Abs(c.Resources)
	if err != nil {
		return c.Resources + "/"
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return absRes + "/"
	}
	rel, err := filepath.Rel(absOut, absRes)
	if err != nil {
		return absRes + "/"
	}
	return filepath.ToSlash(rel) + "/"
}

// outputFormat picks the format from --format, then the output file
// extension, then --pretty, then the default.
func outputFormat(formatName, outputFile string, pretty bool) (string, error) {
	switch {
	case formatName != "":
		if pretty && formatName != "markdown" {
			return "", fmt.Errorf("--pretty requires markdown output, not %s", formatName)
		}
		return formatName, nil
	case outputFile != "":
		f, err := format.DetectFormat(outputFile)
		if err != nil {
			return "", fmt.Errorf("%w (use --format)", err)
		}
		return f.Name(), nil
	case pretty:
		return "markdown", nil
	default:
		return defaultFormat, nil
	}
}

// writeOutput runs render against outputFile or stdout. With pretty set the
// rendered Markdown is styled for the terminal first.
func writeOutput(outputFile string, pretty bool, render func(io.Writer) error) (err error) {
	var output io.Writer
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output file: %w", cerr)
			}
		}()
		output = f
	} else {
		output = os.Stdout
	}

	if !pretty {
		return render(output)
	}

	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	styled, err := renderTerminal(buf.String())
	if err != nil {
		return err
	}
	_, err = io.WriteString(output, styled)
	return err
}

func renderTerminal(markdown string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
