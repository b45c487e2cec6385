package ablation

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sort"
	"sync"
	"time"

	"item-scanner/internal/bench"
	"item-scanner/internal/detect"
	"item-scanner/internal/entity"
	"item-scanner/internal/imaging"
)

// ImageScore is one corpus image's result under one preset.
type ImageScore struct {
	Image     string        `json:"image"`
	Metrics   bench.Metrics `json:"metrics"`
	ElapsedMs int64         `json:"elapsedMs"`
}

// Result is one preset's averaged outcome over the whole corpus.
type Result struct {
	ConfigName string        `json:"config"`
	Disables   detect.Toggle `json:"disables,omitempty"`
	PerImage   []ImageScore  `json:"perImage"`
	Aggregate  bench.Metrics `json:"aggregate"`
	TimingMs   int64         `json:"timingMs"`
}

// Runner evaluates presets over a labeled corpus. Presets run strictly one
// after another so each preset's effect is isolated; the images within one
// preset are independent read-only evaluations and run on a worker pool.
type Runner struct {
	engine  *detect.Engine
	corpus  *bench.Corpus
	workers int

	// decoded screenshots, loaded once before the first preset
	images map[string]*image.RGBA
}

// NewRunner creates a runner over a ready engine and corpus.
func NewRunner(engine *detect.Engine, corpus *bench.Corpus) *Runner {
	return &Runner{
		engine:  engine,
		corpus:  corpus,
		workers: runtime.NumCPU(),
	}
}

// SetWorkers overrides the per-preset worker count.
func (r *Runner) SetWorkers(n int) {
	if n > 0 {
		r.workers = n
	}
}

// Run evaluates every preset in order. Cancelling the context stops the
// suite between presets, never mid-preset, so the returned partial results
// are always internally consistent.
func (r *Runner) Run(ctx context.Context, presets []Preset) ([]Result, error) {
	if err := r.loadImages(); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(presets))
	for _, p := range presets {
		if err := ctx.Err(); err != nil {
			fmt.Printf("[Ablation] Stopping after %d/%d presets: %v\n",
				len(results), len(presets), err)
			return results, err
		}

		fmt.Printf("[Ablation] Running %s over %d images...\n", p.Name, len(r.images))
		res := r.runPreset(p)
		fmt.Printf("[Ablation] %s: F1=%.4f precision=%.4f recall=%.4f (%d ms)\n",
			p.Name, res.Aggregate.F1, res.Aggregate.Precision, res.Aggregate.Recall, res.TimingMs)
		results = append(results, res)
	}
	return results, nil
}

// loadImages decodes every corpus screenshot once. Unreadable images are
// logged and skipped; the run continues with the remainder.
func (r *Runner) loadImages() error {
	if r.images != nil {
		return nil
	}

	r.images = make(map[string]*image.RGBA, r.corpus.Len())
	for _, key := range r.corpus.Keys() {
		img, err := imaging.LoadRGBA(r.corpus.ImagePath(key))
		if err != nil {
			fmt.Printf("[Ablation] Skipping %s: %v\n", key, err)
			continue
		}
		r.images[key] = img
	}

	if len(r.images) == 0 {
		return fmt.Errorf("no corpus image could be decoded")
	}
	return nil
}

// runPreset scores every loaded image under one fixed preset using a
// worker pool. The template store and config are read-only here, so the
// evaluations are safely parallel.
func (r *Runner) runPreset(p Preset) Result {
	start := time.Now()

	keys := make([]string, 0, len(r.images))
	for k := range r.images {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	jobs := make(chan string)
	var mu sync.Mutex
	scores := make([]ImageScore, 0, len(keys))

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for key := range jobs {
				score := r.scoreImage(key, p.Config)
				mu.Lock()
				scores = append(scores, score)
				mu.Unlock()
			}
		}()
	}
	for _, key := range keys {
		jobs <- key
	}
	close(jobs)
	wg.Wait()

	sort.Slice(scores, func(i, j int) bool { return scores[i].Image < scores[j].Image })

	perImage := make([]bench.Metrics, len(scores))
	for i, s := range scores {
		perImage[i] = s.Metrics
	}

	return Result{
		ConfigName: p.Name,
		Disables:   p.Disables,
		PerImage:   scores,
		Aggregate:  bench.Average(perImage),
		TimingMs:   time.Since(start).Milliseconds(),
	}
}

// scoreImage runs detection on one image and scores it against its label.
func (r *Runner) scoreImage(key string, cfg detect.PipelineConfig) ImageScore {
	gt := r.corpus.Images[key]
	img := r.images[key]

	begin := time.Now()
	result, err := r.engine.Detect(img, cfg, detect.Options{ItemCount: len(gt.Items)})
	elapsed := time.Since(begin).Milliseconds()
	if err != nil {
		fmt.Printf("[Ablation] Detection failed on %s: %v\n", key, err)
		return ImageScore{Image: key, Metrics: bench.Score(gt.Items, nil), ElapsedMs: elapsed}
	}

	return ImageScore{
		Image:     key,
		Metrics:   bench.Score(gt.Items, DetectedIDs(result)),
		ElapsedMs: elapsed,
	}
}

// DetectedIDs expands a detection result into one entity id per counted
// detection, the shape ground-truth labels use.
func DetectedIDs(result *detect.Result) []string {
	var ids []string
	for _, a := range result.Aggregated {
		for i := 0; i < a.Count; i++ {
			ids = append(ids, a.EntityID)
		}
	}
	return ids
}

// RaritiesOf is a helper for callers that restrict matching by rarity: it
// collects the distinct rarities present in a ground-truth item list.
func RaritiesOf(cat *entity.Catalog, items []string) []entity.Rarity {
	seen := make(map[entity.Rarity]bool)
	var out []entity.Rarity
	for _, id := range items {
		if e := cat.ByID(id); e != nil && !seen[e.Rarity] {
			seen[e.Rarity] = true
			out = append(out, e.Rarity)
		}
	}
	return out
}
