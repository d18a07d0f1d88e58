package main

import (
	"github.com/labsite/labsite/cmd"

	// Register format plugins
	_ "github.com/labsite/labsite/format/bibtex"
	_ "github.com/labsite/labsite/format/html"
	_ "github.com/labsite/labsite/format/json"
	_ "github.com/labsite/labsite/format/markdown"
	_ "github.com/labsite/labsite/format/text"
)

func main() {
	cmd.Execute()
}
