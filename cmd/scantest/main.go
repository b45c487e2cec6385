// Command scantest runs item detection on a single inventory screenshot
// and prints the per-slot and aggregated results.
package main

import (
	"flag"
	"fmt"
	"os"

	"item-scanner/internal/detect"
	"item-scanner/internal/entity"
	"item-scanner/internal/imaging"
	"item-scanner/internal/version"
)

func main() {
	imagePath := flag.String("image", "", "Path to screenshot (PNG, JPEG, or TIFF)")
	catalogPath := flag.String("entities", "data/entities.json", "Path to entity catalog JSON")
	templateDir := flag.String("templates", "data/templates", "Directory of template icons")
	itemCount := flag.Int("count", 0, "Expected item count (0 = full bar capacity)")
	threshold := flag.Float64("threshold", 0.70, "Fixed match threshold")
	adaptive := flag.Bool("adaptive", false, "Use adaptive threshold selection")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if *imagePath == "" {
		fmt.Println("Usage: scantest -image <path> [-entities <json>] [-templates <dir>] [-count N] [-threshold 0.70] [-adaptive]")
		os.Exit(1)
	}

	img, err := imaging.LoadRGBA(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load screenshot: %v\n", err)
		os.Exit(1)
	}
	bounds := img.Bounds()
	fmt.Printf("Loaded screenshot: %dx%d pixels\n", bounds.Dx(), bounds.Dy())

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

	cfg := detect.DefaultConfig().WithThreshold(*threshold)
	cfg = cfg.WithToggle(detect.ToggleAdaptiveThreshold, *adaptive)

	fmt.Printf("\nPipeline configuration (%s):\n", cfg.Name)
	for _, t := range detect.Toggles() {
		fmt.Printf("  %-20s %v\n", t, cfg.Enabled(t))
	}
	fmt.Printf("  threshold: %.2f (adaptive: %v)\n", cfg.Threshold, cfg.AdaptiveThreshold)

	engine := detect.NewEngine(store)
	result, err := engine.Detect(img, cfg, detect.Options{ItemCount: *itemCount})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Detection failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nCalibration: icon %dx%d, spacing %d/%d, %d per row\n",
		result.Calibration.IconWidth, result.Calibration.IconHeight,
		result.Calibration.XSpacing, result.Calibration.YSpacing,
		result.Calibration.IconsPerRow)
	fmt.Printf("Applied threshold: %.3f\n", result.Threshold)

	fmt.Printf("\nPer-slot results (%d boxes):\n", len(result.Boxes))
	fmt.Printf("%-6s %-10s %-28s %10s %10s\n", "Slot", "State", "Best match", "Score", "Count")
	for _, d := range result.Detections {
		name := d.BestEntity
		if name == "" {
			name = "-"
		}
		count := "-"
		if d.State == detect.SlotMatched {
			count = fmt.Sprintf("%d", d.Count)
		}
		fmt.Printf("%-6d %-10s %-28s %10.3f %10s\n",
			d.SlotIndex, d.State, name, d.BestScore, count)
	}

	fmt.Printf("\nAggregated (%d entities, %d items total):\n",
		len(result.Aggregated), detect.TotalCount(result.Aggregated))
	for _, a := range result.Aggregated {
		fmt.Printf("  %-28s x%-4d confidence %.3f\n", a.Name, a.Count, a.MaxConfidence)
	}
	fmt.Printf("\nDone in %d ms\n", result.ElapsedMs)
}
