// Package main provides hex2rgb, a filter that rewrites hex colour
// literals such as #ff8000 or #fff on standard input as decimal "r g b"
// triples on standard output.
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

// Version is the current version of hex2rgb.
var Version = "0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("hex2rgb", flag.ContinueOnError)
	fs.SetOutput(stderr)
	version := fs.Bool("v", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if *version {
		fmt.Fprintf(stdout, "hex2rgb version %s\n", Version)
		return 0
	}

	if err := filter.RewriteHex(stdin, stdout); err != nil {
		gpltools.TextLogger(stderr, slog.LevelInfo).Error("hex2rgb failed", "err", err)
		return 1
	}
	return 0
}
