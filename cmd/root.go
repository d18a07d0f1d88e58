// Package cmd provides CLI commands for labsite.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/labsite/labsite/config"
)

var (
	configFile   string
	resourcesDir string
	cfg          *config.Config
)

func parseLevel(name string) slog.Level {
	switch strings.ToUpper(name) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setupLogger(levelName string) {
	if levelName == "" {
		levelName = os.Getenv("LOG_LEVEL")
	}

	opts := &slog.HandlerOptions{
		Level: parseLevel(levelName),
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)
}

var rootCmd = &cobra.Command{
	Use:   "labsite",
	Short: "Render a research lab's people and publications pages",
	Long: `Labsite renders a research lab's website from plain-text resources.

It reads the member roster (people/people.txt), one biography per member
(people/{Name}/intro.txt) and a BibTeX catalog (pub/ExPub.txt) from a local
directory or a web origin, and renders them as HTML pages, Markdown, text,
JSON or BibTeX.

Examples:
  labsite people --resources ./Resources
  labsite pubs --sort year-desc --filter zhang
  labsite pubs --format bibtex -o refs.bib
  labsite build -o public --watch
  labsite serve --addr :8080
  labsite mcp`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configFile)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("resources") {
		c.Resources = resourcesDir
		if err := c.Validate(); err != nil {
			return fmt.Errorf("invalid --resources: %w", err)
		}
	}

	if c.LogLevel != "" {
		setupLogger(c.LogLevel)
	}

	cfg = c
	slog.Debug("configuration loaded", "config", cfg.String())
	return nil
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	setupLogger("")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (YAML)")
	rootCmd.PersistentFlags().StringVarP(&resourcesDir, "resources", "r", "", "Resource root: directory or http(s) URL (overrides config)")
	rootCmd.AddCommand(peopleCmd)
	rootCmd.AddCommand(pubsCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(configCmd)
}
