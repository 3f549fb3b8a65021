// Package gpltools converts GIMP palette files into a single browsable HTML
// document, optionally alongside raster swatches, and can keep that output
// up to date while the palettes are being edited.
//
// # Basic Usage
//
//	conv, err := gpltools.New(gpltools.DefaultOptions())
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := conv.ConvertFile([]string{"web.gpl", "pastel.gpl"}, "palettes.html"); err != nil {
//		log.Fatal(err)
//	}
//
// # Failure Semantics
//
// Conversion is all or nothing: if any palette fails to parse, no output is
// written and an existing output file is left untouched. Files are replaced
// by writing a temporary file in the same directory and renaming it.
//
// # Errors
//
// Errors returned by a [Converter] are [*CategorizedError] values, so
// callers can tell a malformed palette from an unwritable destination:
//
//	var cerr *gpltools.CategorizedError
//	if errors.As(err, &cerr) && cerr.Category == gpltools.ErrorCategoryParse {
//		// report the palette problem
//	}
//
// # Watch Mode
//
// [Watch] blocks until its context is cancelled, calling back after the
// watched palettes change:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	err := gpltools.Watch(ctx, paths, 500*time.Millisecond, func() error {
//		return conv.ConvertFile(paths, "palettes.html")
//	}, nil)
package gpltools
