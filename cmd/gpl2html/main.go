// Package main provides gpl2html, which renders GIMP palette files as one
// browsable HTML document.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/opd-ai/gpltools/internal/config"
	"github.com/opd-ai/gpltools/internal/profiling"
	"github.com/opd-ai/gpltools/internal/selftest"
	"github.com/opd-ai/gpltools/pkg/gpltools"
)

// Version is the current version of gpl2html.
// This default value can be overridden at build time using:
//
//	go build -ldflags "-X main.Version=x.y.z"
var Version = "0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	output       string
	test         bool
	configPath   string
	strict       bool
	swatchDir    string
	swatchFormat string
	swatchCell   int
	watch        bool
	version      bool
	debug        bool
	cpuProfile   string
	memProfile   string
}

func newFlagSet(stderr io.Writer) (*flag.FlagSet, *options) {
	o := &options{}
	fs := flag.NewFlagSet("gpl2html", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: gpl2html [flags] [palette.gpl ...]")
		fs.PrintDefaults()
	}

	fs.StringVar(&o.output, "o", "", "Write HTML to `path` instead of standard output")
	fs.StringVar(&o.output, "output", "", "Same as -o")
	fs.BoolVar(&o.test, "t", false, "Run the self-test suite and exit")
	fs.BoolVar(&o.test, "test", false, "Same as -t")
	fs.StringVar(&o.configPath, "c", "", "Path to configuration file (rc or Lua)")
	fs.BoolVar(&o.strict, "strict", false, "Require Name: and Columns: on lines 2 and 3")
	fs.StringVar(&o.swatchDir, "swatch", "", "Also write one swatch image per palette into `dir`")
	fs.StringVar(&o.swatchFormat, "swatch-format", config.DefaultSwatchFormat, "Swatch image format: png or bmp")
	fs.IntVar(&o.swatchCell, "swatch-cell", config.DefaultSwatchCell, "Swatch cell size in pixels")
	fs.BoolVar(&o.watch, "watch", false, "Regenerate output whenever an input palette changes")
	fs.BoolVar(&o.version, "v", false, "Print version and exit")
	fs.BoolVar(&o.debug, "debug", false, "Enable debug logging")
	fs.StringVar(&o.cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	fs.StringVar(&o.memProfile, "memprofile", "", "Write memory profile to file")
	return fs, o
}

func run(args []string, stdout, stderr io.Writer) int {
	fs, o := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if o.version {
		fmt.Fprintf(stdout, "gpl2html version %s\n", Version)
		return 0
	}

	if o.test {
		if failed := selftest.Run(stdout, selftest.Checks()); len(failed) > 0 {
			return 1
		}
		return 0
	}

	cfg, err := loadConfig(o.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return 1
	}
	applyFlags(fs, o, &cfg)

	logger, err := newLogger(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	result := config.Validate(&cfg)
	for _, w := range result.Warnings {
		logger.Warn("configuration warning", "field", w.Field, "message", w.Message)
	}
	if err := result.Error(); err != nil {
		logger.Error("invalid configuration", "err", err)
		return 1
	}

	profCfg := profiling.Config{CPUProfilePath: o.cpuProfile, MemProfilePath: o.memProfile}
	if profCfg.Enabled() {
		profiler, err := profiling.Start(profCfg)
		if err != nil {
			logger.Error("failed to start profiling", "err", err)
			return 1
		}
		defer func() {
			if err := profiler.Stop(); err != nil {
				logger.Warn("failed to stop profiling", "err", err)
			}
		}()
	}

	opts := optionsFromConfig(cfg)
	opts.Logger = logger
	conv, err := gpltools.New(opts)
	if err != nil {
		logger.Error("failed to create converter", "err", err)
		return 1
	}

	paths := fs.Args()
	convert := func() error {
		if cfg.Output.ToStdout() {
			return conv.Convert(paths, stdout)
		}
		return conv.ConvertFile(paths, cfg.Output.Path)
	}

	if err := convert(); err != nil {
		logger.Error("conversion failed", "category", gpltools.CategoryOf(err), "err", err)
		if !cfg.Watch.Enabled {
			return 1
		}
	}

	if !cfg.Watch.Enabled {
		return 0
	}
	return watch(conv, paths, cfg.Watch, convert, logger)
}

// watch regenerates output until SIGINT or SIGTERM.
func watch(conv *gpltools.Converter, paths []string, cfg config.WatchConfig, convert func() error, logger gpltools.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("watching palettes", "count", len(paths), "debounce", cfg.Debounce)
	err := gpltools.Watch(ctx, paths, cfg.Debounce, func() error {
		logger.Info("palette changed, regenerating")
		return convert()
	}, func(err error) {
		logger.Error("regeneration failed", "category", gpltools.CategoryOf(err), "err", err)
	})
	if err != nil {
		logger.Error("watch failed", "err", err)
		return 1
	}

	snap := conv.Metrics().Snapshot()
	logger.Info("stopped watching", "conversions", snap.Conversions, "failures", snap.Failures)
	return 0
}

// loadConfig reads the configuration file, or returns defaults when path
// is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}

	parser, err := config.NewParser()
	if err != nil {
		return config.Config{}, err
	}
	defer parser.Close()

	cfg, err := parser.ParseFile(path)
	if err != nil {
		return config.Config{}, gpltools.NewCategorizedError(err, gpltools.ErrorCategoryConfig, path)
	}
	return *cfg, nil
}

// applyFlags overrides cfg with every flag given on the command line.
func applyFlags(fs *flag.FlagSet, o *options, cfg *config.Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o", "output":
			cfg.Output.Path = o.output
		case "strict":
			cfg.Parse.StrictHeader = o.strict
		case "swatch":
			cfg.Swatch.Dir = o.swatchDir
		case "swatch-format":
			cfg.Swatch.Format = strings.ToLower(o.swatchFormat)
		case "swatch-cell":
			cfg.Swatch.Cell = o.swatchCell
		case "watch":
			cfg.Watch.Enabled = o.watch
		case "debug":
			if o.debug {
				cfg.Log.Level = "debug"
			}
		}
	})
}

// optionsFromConfig maps a loaded configuration onto converter options.
// Logger and Metrics are left unset.
func optionsFromConfig(cfg config.Config) gpltools.Options {
	return gpltools.Options{
		Title:        cfg.Output.Title,
		StrictHeader: cfg.Parse.StrictHeader,
		SwatchDir:    cfg.Swatch.Dir,
		SwatchFormat: cfg.Swatch.Format,
		SwatchCell:   cfg.Swatch.Cell,
	}
}

func newLogger(cfg config.LogConfig, w io.Writer) (gpltools.Logger, error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if cfg.Format == "json" {
		return gpltools.JSONLogger(w, level), nil
	}
	if level == slog.LevelDebug {
		return gpltools.DebugLogger(w), nil
	}
	return gpltools.TextLogger(w, level), nil
}
