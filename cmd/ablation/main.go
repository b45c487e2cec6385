// Command ablation runs the leave-one-out experiment suite over a labeled
// corpus and writes ranking, impact, and recommendation reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"item-scanner/internal/ablation"
	"item-scanner/internal/bench"
	"item-scanner/internal/detect"
	"item-scanner/internal/entity"
	"item-scanner/internal/version"
)

func main() {
	corpusPath := flag.String("corpus", "data/ground-truth.json", "Path to corpus labels JSON")
	catalogPath := flag.String("entities", "data/entities.json", "Path to entity catalog JSON")
	templateDir := flag.String("templates", "data/templates", "Directory of template icons")
	outDir := flag.String("out", "ablation-results", "Directory for reports and logs")
	workers := flag.Int("workers", 0, "Worker count per preset (0 = NumCPU)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cleanup, err := initLogger(*outDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	// SIGINT stops the suite between presets; completed presets still report.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	corpus, err := bench.LoadCorpus(*corpusPath)
	if err != nil {
		slog.Error("Failed to load corpus", "path", *corpusPath, "error", err)
		os.Exit(1)
	}

	catalog, err := entity.LoadCatalog(*catalogPath)
	if err != nil {
		slog.Error("Failed to load catalog", "path", *catalogPath, "error", err)
		os.Exit(1)
	}

	store, err := detect.LoadTemplates(*templateDir, catalog)
	if err != nil {
		slog.Error("Failed to load templates", "dir", *templateDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Experiment inputs ready",
		"images", corpus.Len(), "entities", catalog.Len(), "templates", store.Len())

	runner := ablation.NewRunner(detect.NewEngine(store), corpus)
	if *workers > 0 {
		runner.SetWorkers(*workers)
	}

	presets := ablation.Suite()
	slog.Info("Running ablation suite", "presets", len(presets))

	results, runErr := runner.Run(ctx, presets)
	if len(results) == 0 {
		slog.Error("Suite produced no results", "error", runErr)
		os.Exit(1)
	}
	if runErr != nil {
		slog.Warn("Suite interrupted, reporting completed presets",
			"completed", len(results), "total", len(presets), "error", runErr)
	}

	impacts, err := ablation.ComputeImpacts(results, ablation.BaselineName)
	if err != nil {
		slog.Error("Impact analysis failed", "error", err)
		os.Exit(1)
	}
	recommended := ablation.Recommend(impacts)

	for _, imp := range impacts {
		slog.Debug("Component impact",
			"component", imp.Component, "deltaF1", imp.DeltaF1,
			"significance", imp.Significance.String(), "helps", imp.Helps)
	}

	if err := writeReports(*outDir, results, impacts, recommended); err != nil {
		slog.Error("Failed to write reports", "error", err)
		os.Exit(1)
	}
	slog.Info("Reports written", "dir", *outDir)

	if runErr != nil {
		os.Exit(1)
	}
}

func writeReports(dir string, results []ablation.Result, impacts []ablation.Impact, recommended detect.PipelineConfig) error {
	write := func(name string, fn func(*os.File) error) error {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if err := fn(f); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", name, err)
		}
		return f.Close()
	}

	if err := write("per-image.csv", func(f *os.File) error {
		return ablation.WritePerImageCSV(f, results)
	}); err != nil {
		return err
	}
	if err := write("summary.csv", func(f *os.File) error {
		return ablation.WriteSummaryCSV(f, results)
	}); err != nil {
		return err
	}
	if err := write("report.md", func(f *os.File) error {
		return ablation.WriteMarkdown(f, results, impacts, recommended)
	}); err != nil {
		return err
	}
	return write("report.json", func(f *os.File) error {
		return ablation.WriteJSON(f, results, impacts, recommended)
	})
}
