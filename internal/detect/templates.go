package detect

import (
	"errors"
	"fmt"
	"image"
	"io/fs"

	"item-scanner/internal/entity"
	"item-scanner/internal/imaging"
	"item-scanner/internal/metrics"
)

// templateScales are the sampling scales used when multi-scale matching is
// enabled. Index 1 is the canonical scale used for single-scale matching.
var templateScales = [3]float64{0.9, 1.0, 1.1}

// Template is one entity's reference icon, pre-sampled at every scale.
type Template struct {
	Entity  entity.GameEntity
	Samples [3]*metrics.Sample // indexed like templateScales
}

// Canonical returns the sample at the canonical (1.0) scale.
func (t *Template) Canonical() *metrics.Sample {
	return t.Samples[1]
}

// TemplateStore holds the reference icon library. A store is fully built
// before it is handed to an engine and is read-only afterwards, so it can
// be shared by any number of concurrent detection runs.
type TemplateStore struct {
	templates []Template
	names     map[string]string
}

// NewTemplateStore builds a store from prepared templates. Used directly by
// callers that synthesize icons; production code goes through LoadTemplates.
func NewTemplateStore(templates []Template) *TemplateStore {
	s := &TemplateStore{
		templates: templates,
		names:     make(map[string]string, len(templates)),
	}
	for _, t := range templates {
		s.names[t.Entity.ID] = t.Entity.Name
	}
	return s
}

// NewTemplate prepares a template from a decoded icon image.
func NewTemplate(e entity.GameEntity, icon *image.RGBA) Template {
	t := Template{Entity: e}
	for i, scale := range templateScales {
		t.Samples[i] = metrics.NewSample(imaging.CanonicalAtScale(icon, scale))
	}
	return t
}

// LoadTemplates reads one reference icon per catalog entity from
// templateDir. Missing or corrupt icon files are logged and skipped so one
// bad asset never takes down the whole library; loading fails only when no
// usable template remains.
func LoadTemplates(templateDir string, cat *entity.Catalog) (*TemplateStore, error) {
	templates := make([]Template, 0, cat.Len())
	skipped := 0

	for _, e := range cat.Entities() {
		path := entity.TemplatePath(templateDir, e.ID)
		icon, err := imaging.LoadRGBA(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				fmt.Printf("[Templates] No icon for %s, skipping\n", e.ID)
			} else {
				fmt.Printf("[Templates] Cannot load icon for %s: %v\n", e.ID, err)
			}
			skipped++
			continue
		}
		templates = append(templates, NewTemplate(e, icon))
	}

	if len(templates) == 0 {
		return nil, fmt.Errorf("no usable templates in %s (%d skipped)", templateDir, skipped)
	}

	fmt.Printf("[Templates] Loaded %d templates from %s (%d skipped)\n",
		len(templates), templateDir, skipped)
	return NewTemplateStore(templates), nil
}

// Templates returns the full template list.
func (s *TemplateStore) Templates() []Template {
	return s.templates
}

// Len returns the number of loaded templates.
func (s *TemplateStore) Len() int {
	return len(s.templates)
}

// NameOf returns the display name for an entity id, falling back to the id.
func (s *TemplateStore) NameOf(id string) string {
	if name, ok := s.names[id]; ok {
		return name
	}
	return id
}
