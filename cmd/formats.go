package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/labsite/labsite/format"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List output formats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Available formats:")
		for _, name := range format.List() {
			f, _ := format.Get(name)

			var pages []string
			if _, ok := f.(format.PeopleRenderer); ok {
				pages = append(pages, "people")
			}
			if _, ok := f.(format.PublicationRenderer); ok {
				pages = append(pages, "pubs")
			}

			fmt.Printf("  %-9s %s [%s] (.%s)\n", name, f.Description(), strings.Join(pages, ", "), strings.Join(f.Extensions(), ", ."))
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long:  `Print the configuration after defaults, the config file, environment and flags are applied.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}
