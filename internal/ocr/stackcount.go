// Package ocr reads numeric stack counts from slot crops. It is a thin
// collaborator around Tesseract; the detection engine treats an unreadable
// count as "unknown quantity, assume 1" and never blocks on it beyond the
// caller's own timeout.
package ocr

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// StackCount is the result of reading one slot's count overlay.
type StackCount struct {
	Count      int     // parsed count; meaningful only when OK
	OK         bool    // false when no plausible number was read
	Confidence float64 // mean word confidence reported by Tesseract (0-100)
	RawText    string  // unparsed OCR output, for diagnostics
}

// minScaleDim is the minimum edge length the crop is upscaled to before
// OCR; Tesseract is unreliable below roughly this size.
const minScaleDim = 120

// Reader wraps a Tesseract client configured for short digit strings.
// A Reader is not safe for concurrent use; create one per worker.
type Reader struct {
	client *gosseract.Client
}

// NewReader creates a stack-count reader.
func NewReader() (*Reader, error) {
	client := gosseract.NewClient()
	if err := client.SetWhitelist("0123456789x"); err != nil {
		client.Close()
		return nil, fmt.Errorf("cannot configure OCR whitelist: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
		client.Close()
		return nil, fmt.Errorf("cannot configure OCR segmentation: %w", err)
	}
	return &Reader{client: client}, nil
}

// Close releases the Tesseract client.
func (r *Reader) Close() error {
	return r.client.Close()
}

// Read runs OCR on a slot crop and parses the stack count.
func (r *Reader) Read(crop *image.RGBA) (StackCount, error) {
	png, err := binarizeForOCR(crop)
	if err != nil {
		return StackCount{}, err
	}

	if err := r.client.SetImageFromBytes(png); err != nil {
		return StackCount{}, fmt.Errorf("cannot set OCR image: %w", err)
	}

	text, err := r.client.Text()
	if err != nil {
		return StackCount{}, fmt.Errorf("OCR failed: %w", err)
	}

	sc := StackCount{RawText: text}
	sc.Confidence = r.meanWordConfidence()
	sc.Count, sc.OK = ParseCount(text)
	return sc, nil
}

// ReadStackCount adapts Read to the engine's count-reader contract,
// swallowing errors: an unreadable count is simply unknown.
func (r *Reader) ReadStackCount(crop *image.RGBA) (int, bool) {
	sc, err := r.Read(crop)
	if err != nil {
		return 0, false
	}
	if !sc.OK {
		return 0, false
	}
	return sc.Count, true
}

// meanWordConfidence averages Tesseract's per-word confidence, or 0 when
// nothing was recognized.
func (r *Reader) meanWordConfidence() float64 {
	boxes, err := r.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	sum := 0.0
	for _, b := range boxes {
		sum += b.Confidence
	}
	return sum / float64(len(boxes))
}

// ParseCount extracts a plausible stack count from raw OCR text. Accepts
// forms like "12", "x12" and "12x"; rejects zero and implausibly large
// values (a stack never exceeds four digits).
func ParseCount(raw string) (int, bool) {
	s := strings.TrimSpace(strings.ToLower(raw))
	s = strings.Trim(s, "x")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	if n <= 0 || n > 9999 {
		return 0, false
	}
	return n, true
}

// binarizeForOCR converts a crop to a high-contrast black-on-white PNG:
// grayscale, upscale to a workable size, then Otsu threshold.
func binarizeForOCR(crop *image.RGBA) ([]byte, error) {
	mat, err := gocv.ImageToMatRGBA(crop)
	if err != nil {
		return nil, fmt.Errorf("cannot convert crop: %w", err)
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorRGBAToGray)

	// Upscale small crops so glyph strokes survive thresholding.
	w, h := gray.Cols(), gray.Rows()
	if w < minScaleDim || h < minScaleDim {
		scale := float64(minScaleDim) / float64(min(w, h))
		resized := gocv.NewMat()
		defer resized.Close()
		gocv.Resize(gray, &resized, image.Pt(0, 0), scale, scale, gocv.InterpolationCubic)
		resized.CopyTo(&gray)
	}

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(gray, &binary, 0, 255, gocv.ThresholdBinary+gocv.ThresholdOtsu)

	buf, err := gocv.IMEncode(gocv.PNGFileExt, binary)
	if err != nil {
		return nil, fmt.Errorf("cannot encode OCR input: %w", err)
	}
	defer buf.Close()

	out := make([]byte, len(buf.GetBytes()))
	copy(out, buf.GetBytes())
	return out, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
