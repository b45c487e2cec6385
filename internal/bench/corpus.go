// Package bench scores the detection engine against a labeled corpus and
// keeps the persisted benchmark history.
package bench

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// GroundTruth labels one corpus screenshot.
type GroundTruth struct {
	Items      []string `json:"items"`      // entity ids present, one per occupied slot
	Resolution string   `json:"resolution"` // "WxH", informational
}

// Corpus is a labeled set of screenshots. Image paths are resolved relative
// to the corpus root (the directory holding the labels file).
type Corpus struct {
	Root   string
	Images map[string]GroundTruth
}

// LoadCorpus reads a labels JSON file: a mapping from image path to ground
// truth. Keys beginning with an underscore are metadata and are skipped.
func LoadCorpus(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read corpus labels: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("cannot parse corpus labels %s: %w", path, err)
	}

	images := make(map[string]GroundTruth, len(raw))
	for key, msg := range raw {
		if strings.HasPrefix(key, "_") {
			continue
		}
		var gt GroundTruth
		if err := json.Unmarshal(msg, &gt); err != nil {
			return nil, fmt.Errorf("bad ground truth for %q in %s: %w", key, path, err)
		}
		images[key] = gt
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("corpus %s contains no labeled images", path)
	}

	return &Corpus{
		Root:   filepath.Dir(path),
		Images: images,
	}, nil
}

// Keys returns the image keys in sorted order for deterministic iteration.
func (c *Corpus) Keys() []string {
	keys := make([]string, 0, len(c.Images))
	for k := range c.Images {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ImagePath resolves an image key against the corpus root.
func (c *Corpus) ImagePath(key string) string {
	return filepath.Join(c.Root, key)
}

// Len returns the number of labeled images.
func (c *Corpus) Len() int {
	return len(c.Images)
}
