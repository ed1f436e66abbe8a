package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

const usageText = `mdsite converts a directory of Markdown articles into a static website.

Usage:
  mdsite [flags] <file.md>          convert one file, HTML on stdout
  mdsite [flags] <indir> <outdir>   build a whole site

Flags:
`

// cliFlags holds the parsed command line.
type cliFlags struct {
	config       string
	baseURL      string
	staticDir    string
	templatesDir string
	pdf          bool
	fetchTimeout string
	verbose      bool
	quiet        bool
	version      bool

	// Positional arguments: one for single-file mode, two for batch mode.
	args []string
}

// parseFlags parses the command line (args includes the program name).
func parseFlags(args []string) (*cliFlags, error) {
	fs := flag.NewFlagSet("mdsite", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usageText)
		fs.PrintDefaults()
	}

	f := &cliFlags{}
	fs.StringVarP(&f.config, "config", "c", "", "site config file (YAML)")
	fs.StringVar(&f.baseURL, "base-url", "", "absolute URL prefix for feed links")
	fs.StringVar(&f.staticDir, "static", "", "static assets directory copied into the output")
	fs.StringVar(&f.templatesDir, "templates", "", "directory of page template overrides")
	fs.BoolVar(&f.pdf, "pdf", false, "also export each article's print variant as PDF")
	fs.StringVar(&f.fetchTimeout, "fetch-timeout", "", "remote image fetch timeout (Go duration, e.g. 5s)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "log errors only")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}

	f.args = fs.Args()
	return f, nil
}

// logLevel maps verbosity flags to a log level name.
func (f *cliFlags) logLevel() string {
	switch {
	case f.quiet:
		return "error"
	case f.verbose:
		return "debug"
	}
	return "info"
}
