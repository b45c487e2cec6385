// Command benchmark scores the detection engine against a labeled corpus
// and appends the result to the persisted benchmark history.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"item-scanner/internal/ablation"
	"item-scanner/internal/bench"
	"item-scanner/internal/detect"
	"item-scanner/internal/entity"
	"item-scanner/internal/imaging"
	"item-scanner/internal/version"
)

func main() {
	corpusPath := flag.String("corpus", "data/ground-truth.json", "Path to corpus labels JSON")
	catalogPath := flag.String("entities", "data/entities.json", "Path to entity catalog JSON")
	templateDir := flag.String("templates", "data/templates", "Directory of template icons")
	historyPath := flag.String("history", "data/benchmark-history.json", "Benchmark history file")
	mode := flag.String("mode", "default", "Run label recorded in the history")
	threshold := flag.Float64("threshold", 0.70, "Fixed match threshold")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	corpus, err := bench.LoadCorpus(*corpusPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load corpus: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Corpus: %d labeled images under %s\n", corpus.Len(), corpus.Root)

	catalog, err := entity.LoadCatalog(*catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	store, err := detect.LoadTemplates(*templateDir, catalog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load templates: %v\n", err)
		os.Exit(1)
	}

	history, err := bench.LoadHistory(*historyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load history: %v\n", err)
		os.Exit(1)
	}

	cfg := detect.DefaultConfig().WithThreshold(*threshold).WithName(*mode)
	engine := detect.NewEngine(store)

	start := time.Now()
	var perImage []bench.ImageResult
	var perMetrics []bench.Metrics
	for _, key := range corpus.Keys() {
		gt := corpus.Images[key]

		img, err := imaging.LoadRGBA(corpus.ImagePath(key))
		if err != nil {
			fmt.Printf("Skipping %s: %v\n", key, err)
			continue
		}

		begin := time.Now()
		result, err := engine.Detect(img, cfg, detect.Options{ItemCount: len(gt.Items)})
		if err != nil {
			fmt.Printf("Detection failed on %s: %v\n", key, err)
			continue
		}

		m := bench.Score(gt.Items, ablation.DetectedIDs(result))
		perImage = append(perImage, bench.ImageResult{
			Image:     key,
			Metrics:   m,
			ElapsedMs: time.Since(begin).Milliseconds(),
		})
		perMetrics = append(perMetrics, m)
		fmt.Printf("  %-40s F1=%.4f (%d/%d items)\n",
			key, m.F1, m.TruePositives, len(gt.Items))
	}

	if len(perImage) == 0 {
		fmt.Fprintln(os.Stderr, "No image produced a result")
		os.Exit(1)
	}

	now := time.Now()
	run := bench.Run{
		ID:        bench.NewRunID(now),
		Timestamp: now,
		Mode:      *mode,
		Metrics:   bench.Average(perMetrics),
		Timing:    bench.Timing{TotalMs: time.Since(start).Milliseconds()},
		PerImage:  perImage,
		Config: bench.RunConfig{
			Threshold:     cfg.Threshold,
			TemplateCount: store.Len(),
		},
	}
	history.Append(run)

	if err := history.Save(*historyPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save history: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nRun %s: accuracy=%.4f precision=%.4f recall=%.4f f1=%.4f (%d ms)\n",
		run.ID, run.Metrics.Accuracy, run.Metrics.Precision,
		run.Metrics.Recall, run.Metrics.F1, run.Timing.TotalMs)
	fmt.Printf("History now holds %d runs in %s\n", len(history.Runs), *historyPath)
}
