// Package main provides huesort, a filter that reorders the colour entry
// lines of a GIMP palette on standard input by hue. Other lines are passed
// through in place.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/opd-ai/gpltools/internal/filter"
	"github.com/opd-ai/gpltools/pkg/gpltools"
)

// Version is the current version of huesort.
var Version = "0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("huesort", flag.ContinueOnError)
	fs.SetOutput(stderr)
	version := fs.Bool("v", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if *version {
		fmt.Fprintf(stdout, "huesort version %s\n", Version)
		return 0
	}

	if err := filter.HueSort(stdin, stdout); err != nil {
		gpltools.TextLogger(stderr, slog.LevelInfo).Error("huesort failed", "err", err)
		return 1
	}
	return 0
}
