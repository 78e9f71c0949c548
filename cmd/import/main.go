// Package main is the one-shot importer: it reads a dataset manifest, runs
// the combine-and-verify pipeline over each dataset, and writes one merged
// CSV per dataset. It needs no database — use it to validate fresh exports
// before they go anywhere near the API.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mfreitag/fahrtenlog/internal/csvio"
	"github.com/mfreitag/fahrtenlog/internal/manifest"
	"github.com/mfreitag/fahrtenlog/internal/timeline"
)

func main() {
	var (
		manifestPath = flag.String("manifest", "datasets.yaml", "path to the dataset manifest")
		outDir       = flag.String("out", ".", "directory for merged CSV output")
		dataset      = flag.String("dataset", "", "import only the named dataset (default: all)")
		verbose      = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(context.Background(), logger, *manifestPath, *outDir, *dataset); err != nil {
		logger.Error("import failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, manifestPath, outDir, only string) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}
	baseDir := filepath.Dir(manifestPath)
	sink := timeline.NewSlogSink(logger)

	for _, d := range m.Datasets {
		if only != "" && d.Name != only {
			continue
		}

		files, err := d.Resolve(baseDir)
		if err != nil {
			return err
		}

		loader, err := csvio.NewReader(d.Encoding, delimiterOf(d))
		if err != nil {
			return err
		}

		combiner := timeline.NewCombiner(loader, d.GapThreshold(timeline.DefaultGapThreshold), sink)
		logger.Info("combining dataset", "dataset", d.Name, "files", len(files))

		merged, err := combiner.CombineAndVerify(ctx, files)
		if err != nil {
			return err
		}

		writer, err := csvio.NewWriter(d.Encoding, delimiterOf(d))
		if err != nil {
			return err
		}
		outPath := filepath.Join(outDir, d.Name+"_merged.csv")
		if err := writer.WriteFile(outPath, merged); err != nil {
			return err
		}

		logger.Info("dataset merged", "dataset", d.Name, "rows", merged.Len(), "out", outPath)
	}
	return nil
}

// delimiterOf returns the dataset's delimiter as a rune, or zero when unset
// so the csvio default applies.
func delimiterOf(d manifest.Dataset) rune {
	if d.Delimiter == "" {
		return 0
	}
	return []rune(d.Delimiter)[0]
}
