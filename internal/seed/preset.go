package seed

import (
	_ "embed"
	"fmt"

	"blogicum/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed preset.yaml
var presetYAML []byte

// preset is the curated vocabulary shipped with the demo seed: categories
// and locations that posts are distributed across.
type preset struct {
	Categories []struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		Slug        string `yaml:"slug"`
		IsPublished bool   `yaml:"is_published"`
	} `yaml:"categories"`
	Locations []struct {
		Name        string `yaml:"name"`
		IsPublished bool   `yaml:"is_published"`
	} `yaml:"locations"`
}

// loadPreset parses the embedded preset file.
func loadPreset() (*preset, error) {
	var p preset
	if err := yaml.Unmarshal(presetYAML, &p); err != nil {
		return nil, fmt.Errorf("failed to parse seed preset: %w", err)
	}
	return &p, nil
}

// applyPreset upserts the preset vocabularies, keyed by slug for categories
// and name for locations so re-seeding is idempotent.
func applyPreset(db *gorm.DB, p *preset) ([]*models.Category, []*models.Location, error) {
	categories := make([]*models.Category, 0, len(p.Categories))
	for _, c := range p.Categories {
		category := &models.Category{
			Title:       c.Title,
			Description: c.Description,
			Slug:        c.Slug,
			IsPublished: c.IsPublished,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "is_published"}),
		}).Create(category).Error
		if err != nil {
			return nil, nil, fmt.Errorf("failed to upsert category %q: %w", c.Slug, err)
		}
		categories = append(categories, category)
	}

	locations := make([]*models.Location, 0, len(p.Locations))
	for _, l := range p.Locations {
		location := &models.Location{Name: l.Name, IsPublished: l.IsPublished}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_published"}),
		}).Create(location).Error
		if err != nil {
			return nil, nil, fmt.Errorf("failed to upsert location %q: %w", l.Name, err)
		}
		locations = append(locations, location)
	}

	return categories, locations, nil
}
