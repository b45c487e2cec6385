package entity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Catalog is the read-only universe of entities the matcher chooses among.
type Catalog struct {
	entities []GameEntity
	byID     map[string]int
}

// catalogEntry is the on-disk shape of one catalog record.
type catalogEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Rarity string `json:"rarity"`
}

// NewCatalog builds a catalog from a slice of entities, sorted by name.
func NewCatalog(entities []GameEntity) *Catalog {
	c := &Catalog{
		entities: append([]GameEntity(nil), entities...),
		byID:     make(map[string]int, len(entities)),
	}
	sort.Slice(c.entities, func(i, j int) bool {
		return strings.ToLower(c.entities[i].Name) < strings.ToLower(c.entities[j].Name)
	})
	for i, e := range c.entities {
		c.byID[e.ID] = i
	}
	return c
}

// LoadCatalog reads a catalog JSON file (an array of entries). Entries with
// an unrecognized type or rarity are skipped with a warning so one bad record
// never sinks the whole catalog.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read entity catalog: %w", err)
	}

	var entries []catalogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("cannot parse entity catalog %s: %w", path, err)
	}

	entities := make([]GameEntity, 0, len(entries))
	for _, en := range entries {
		if en.ID == "" {
			if en.Name == "" {
				fmt.Printf("[Catalog] Skipping entry with no id or name\n")
				continue
			}
			en.ID = Slug(en.Name)
		}
		typ, err := ParseType(en.Type)
		if err != nil {
			fmt.Printf("[Catalog] Skipping %q: %v\n", en.ID, err)
			continue
		}
		rarity, err := ParseRarity(en.Rarity)
		if err != nil {
			fmt.Printf("[Catalog] Skipping %q: %v\n", en.ID, err)
			continue
		}
		entities = append(entities, GameEntity{
			ID:     en.ID,
			Name:   en.Name,
			Type:   typ,
			Rarity: rarity,
		})
	}

	if len(entities) == 0 {
		return nil, fmt.Errorf("entity catalog %s contains no usable entries", path)
	}

	fmt.Printf("[Catalog] Loaded %d entities from %s\n", len(entities), path)
	return NewCatalog(entities), nil
}

// Entities returns all entities sorted by display name.
func (c *Catalog) Entities() []GameEntity {
	return c.entities
}

// ByID returns the entity with the given id, or nil if not present.
func (c *Catalog) ByID(id string) *GameEntity {
	if i, ok := c.byID[id]; ok {
		return &c.entities[i]
	}
	return nil
}

// NameOf returns the display name for an entity id, falling back to the id
// itself for unknown entities.
func (c *Catalog) NameOf(id string) string {
	if e := c.ByID(id); e != nil {
		return e.Name
	}
	return id
}

// Len returns the number of entities in the catalog.
func (c *Catalog) Len() int {
	return len(c.entities)
}

// TemplatePath derives the reference icon path for an entity id.
func TemplatePath(templateDir, id string) string {
	return filepath.Join(templateDir, id+".png")
}
