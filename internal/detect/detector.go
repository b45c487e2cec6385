package detect

import (
	"fmt"
	"image"
	"time"

	"item-scanner/internal/calibration"
	"item-scanner/internal/entity"
	"item-scanner/internal/grid"
	"item-scanner/internal/imaging"
	"item-scanner/internal/metrics"
	"item-scanner/pkg/geometry"
)

// SlotState is the terminal classification of one slot.
type SlotState int

const (
	// SlotEmpty means the crop's variance fell below the empty threshold
	// and it was never scored against the library.
	SlotEmpty SlotState = iota
	// SlotMatched means the best template score cleared the threshold.
	SlotMatched
	// SlotUnmatched means the slot was scored but no template cleared the
	// threshold. Not an error; it is the expected "no item here" outcome.
	SlotUnmatched
)

func (s SlotState) String() string {
	switch s {
	case SlotEmpty:
		return "Empty"
	case SlotMatched:
		return "Matched"
	case SlotUnmatched:
		return "Unmatched"
	default:
		return "Unknown"
	}
}

// Method indicates how a detection was produced.
type Method int

const (
	// MethodTemplateMatch indicates a library comparison produced the detection.
	MethodTemplateMatch Method = iota
	// MethodManual indicates a user-supplied correction.
	MethodManual
)

func (m Method) String() string {
	switch m {
	case MethodTemplateMatch:
		return "Template"
	case MethodManual:
		return "Manual"
	default:
		return "Unknown"
	}
}

// agreement bonus parameters: when this many enabled measures individually
// exceed the level, the combined score is boosted asymptotically toward 1.
const (
	agreementLevel   = 0.70
	agreementMinimum = 2
	agreementBoost   = 0.10
)

// Detection is the per-slot result of one run.
type Detection struct {
	SlotIndex  int              `json:"slot"`
	State      SlotState        `json:"-"`
	EntityID   string           `json:"entity_id,omitempty"` // empty unless Matched
	Confidence float64          `json:"confidence"`
	Count      int              `json:"count,omitempty"` // stack count, 1 unless OCR read more
	Method     Method           `json:"-"`
	Box        geometry.RectInt `json:"box"`

	// Diagnostics for misses: the best-scoring template and its score even
	// when it fell short of the threshold.
	BestEntity string  `json:"best_entity,omitempty"`
	BestScore  float64 `json:"best_score"`
}

// Options carries per-call inputs that are not part of the pipeline config.
type Options struct {
	// ItemCount is the expected number of occupied slots (from ground truth
	// during benchmarking). Zero means use the calibration's full capacity.
	ItemCount int

	// AllowedRarities restricts candidate templates when the rarity filter
	// toggle is on. Empty means no restriction.
	AllowedRarities []entity.Rarity
}

// Result is everything one detection run produced.
type Result struct {
	Detections  []Detection
	Aggregated  []AggregatedDetection
	Boxes       []grid.SlotBox
	Calibration calibration.Calibration
	Threshold   float64 // the threshold actually applied (fixed or adaptive)
	Config      PipelineConfig
	ElapsedMs   int64
}

// CountReader reads a numeric stack count from a slot crop. A false ok
// means the count is unknown and the slot is assumed to hold one.
type CountReader interface {
	ReadStackCount(crop *image.RGBA) (count int, ok bool)
}

// Engine matches screenshot slots against a template store. The store must
// be fully loaded before the engine is constructed; the engine itself holds
// no per-run state, so one engine may serve concurrent runs on different
// images.
type Engine struct {
	store  *TemplateStore
	counts CountReader
}

// NewEngine creates an engine over a loaded template store.
func NewEngine(store *TemplateStore) *Engine {
	return &Engine{store: store}
}

// UseCountReader attaches an optional stack-count reader consulted for
// matched slots. Must be set before the engine starts serving runs.
func (e *Engine) UseCountReader(r CountReader) {
	e.counts = r
}

// Store returns the engine's template store.
func (e *Engine) Store() *TemplateStore {
	return e.store
}

// slotScore is the transient scoring state for one slot.
type slotScore struct {
	box        grid.SlotBox
	crop       *image.RGBA
	empty      bool
	bestID     string
	bestName   string
	bestScore  float64
	confidence float64
}

// Detect runs the full pipeline on one screenshot under a fixed config.
func (e *Engine) Detect(img image.Image, cfg PipelineConfig, opts Options) (*Result, error) {
	start := time.Now()

	rgba := imaging.EnsureRGBA(img)
	width := rgba.Bounds().Dx()
	height := rgba.Bounds().Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("empty screenshot")
	}

	// Geometry: calibration and slot boxes.
	var cal calibration.Calibration
	if cfg.ResolutionAware {
		var exact bool
		cal, exact = calibration.ForResolution(width, height)
		if !exact {
			fmt.Printf("[Detect] No preset for %s, using scaled base calibration\n",
				calibration.Key(width, height))
		}
	} else {
		cal = calibration.ScaledDefault(width, height)
	}

	itemCount := cal.Capacity()
	if cfg.DynamicGrid && opts.ItemCount > 0 {
		itemCount = opts.ItemCount
	}

	boxes, _, skipped := grid.PlaceSlots(width, height, cal, itemCount)
	if skipped > 0 {
		fmt.Printf("[Detect] Excluded %d slot boxes outside %dx%d\n", skipped, width, height)
	}

	candidates := e.candidateTemplates(cfg, opts)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no candidate templates (library %d, rarity filter %v)",
			e.store.Len(), opts.AllowedRarities)
	}

	pre := imaging.PreprocessOptions{
		Contrast:       cfg.ContrastEnhance,
		Sharpen:        cfg.Sharpen,
		Equalize:       cfg.EqualizeHist,
		NormalizeColor: cfg.ColorNormalize,
	}

	// Pass 1: score every slot, keeping the best template per slot. The
	// threshold is chosen afterwards so the adaptive policy can see the
	// whole score distribution.
	slots := make([]slotScore, len(boxes))
	var scored []float64
	for i, box := range boxes {
		s := &slots[i]
		s.box = box
		s.crop = imaging.Crop(rgba, box.ImageRect())

		crop := imaging.Preprocess(s.crop, pre)
		canonical := imaging.Canonical(crop)

		if cfg.EmptyCellFilter && IsEmptySlot(canonical, cfg.EmptyVariance) {
			s.empty = true
			continue
		}

		sample := metrics.NewSample(canonical)
		s.bestID, s.bestName, s.bestScore = e.bestMatch(sample, candidates, cfg)
		scored = append(scored, s.bestScore)
	}

	threshold := cfg.Threshold
	if cfg.AdaptiveThreshold && len(scored) >= 3 {
		threshold = AdaptiveThreshold(scored)
	}

	// Pass 2: classify against the chosen threshold.
	detections := make([]Detection, 0, len(slots))
	for i := range slots {
		s := &slots[i]
		det := Detection{
			SlotIndex: s.box.Index,
			Box:       s.box.Rect(),
			Method:    MethodTemplateMatch,
		}
		switch {
		case s.empty:
			det.State = SlotEmpty
		case s.bestScore >= threshold:
			det.State = SlotMatched
			det.EntityID = s.bestID
			det.Confidence = s.bestScore
			det.Count = e.stackCount(s.crop)
			det.BestEntity = s.bestName
			det.BestScore = s.bestScore
		default:
			det.State = SlotUnmatched
			det.BestEntity = s.bestName
			det.BestScore = s.bestScore
		}
		detections = append(detections, det)
	}

	result := &Result{
		Detections:  detections,
		Aggregated:  Aggregate(detections, e.store.NameOf),
		Boxes:       boxes,
		Calibration: cal,
		Threshold:   threshold,
		Config:      cfg,
		ElapsedMs:   time.Since(start).Milliseconds(),
	}
	return result, nil
}

// candidateTemplates applies the rarity filter to the template library.
func (e *Engine) candidateTemplates(cfg PipelineConfig, opts Options) []Template {
	all := e.store.Templates()
	if !cfg.RarityFilter || len(opts.AllowedRarities) == 0 {
		return all
	}

	allowed := make(map[entity.Rarity]bool, len(opts.AllowedRarities))
	for _, r := range opts.AllowedRarities {
		allowed[r] = true
	}

	filtered := make([]Template, 0, len(all))
	for _, t := range all {
		if allowed[t.Entity.Rarity] {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// bestMatch scores a slot sample against every candidate and returns the
// best (id, name, score). Multi-scale matching keeps the best scale per
// template; the agreement bonus boosts scores corroborated by several
// independent measures.
func (e *Engine) bestMatch(sample *metrics.Sample, candidates []Template, cfg PipelineConfig) (string, string, float64) {
	enabled := cfg.MetricsEnabled()

	bestID, bestName := "", ""
	bestScore := 0.0
	for i := range candidates {
		t := &candidates[i]

		score := 0.0
		if cfg.MultiScale {
			for _, ts := range t.Samples {
				s := metrics.Score(sample, ts, enabled, cfg.Weights)
				c := applyAgreement(s, enabled, cfg.AgreementBonus)
				if c > score {
					score = c
				}
			}
		} else {
			s := metrics.Score(sample, t.Canonical(), enabled, cfg.Weights)
			score = applyAgreement(s, enabled, cfg.AgreementBonus)
		}

		if score > bestScore {
			bestScore = score
			bestID = t.Entity.ID
			bestName = t.Entity.Name
		}
	}
	return bestID, bestName, bestScore
}

// applyAgreement boosts a combined score asymptotically toward 1 when
// enough enabled measures individually agree.
func applyAgreement(s metrics.Scores, enabled metrics.Enabled, on bool) float64 {
	if !on {
		return s.Combined
	}
	if s.Agreeing(enabled, agreementLevel) >= agreementMinimum {
		return s.Combined + (1-s.Combined)*agreementBoost
	}
	return s.Combined
}

// stackCount consults the optional count reader for a matched slot. An
// unknown count means one.
func (e *Engine) stackCount(crop *image.RGBA) int {
	if e.counts == nil {
		return 1
	}
	if n, ok := e.counts.ReadStackCount(crop); ok && n > 0 {
		return n
	}
	return 1
}
