// Package fixtures dumps every content table to JSON files and loads them back. A dump
// taken from one deployment can seed another, keeping record IDs.
package fixtures

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/suresh-yadav/portfolio-backend/database"
	"github.com/suresh-yadav/portfolio-backend/models"
)

// Result reports how many records one fixture file held.
type Result struct {
	File    string `json:"file"`
	Records int    `json:"records"`
}

type table interface {
	descriptor() models.Descriptor
	dump(ctx context.Context, db *gorm.DB) (any, int, error)
	load(ctx context.Context, tx *gorm.DB, data []byte) (int, error)
}

type typedTable[T any] struct {
	desc models.Descriptor
}

func (t typedTable[T]) descriptor() models.Descriptor {
	return t.desc
}

func (t typedTable[T]) dump(ctx context.Context, db *gorm.DB) (any, int, error) {
	records, err := database.NewRecordRepo[T](db, "").FindAll(ctx)
	return records, len(records), err
}

func (t typedTable[T]) load(ctx context.Context, tx *gorm.DB, data []byte) (int, error) {
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("decode %s: %w", t.desc.FixtureFile, err)
	}
	if err := database.NewRecordRepo[T](tx, "").ReplaceAll(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// tables lists every record kind, parents first.
func tables() []table {
	return []table{
		typedTable[models.Author]{models.AuthorDescriptor},
		typedTable[models.BlogPost]{models.BlogPostDescriptor},
		typedTable[models.Category]{models.CategoryDescriptor},
		typedTable[models.Project]{models.ProjectDescriptor},
		typedTable[models.Service]{models.ServiceDescriptor},
		typedTable[models.DemoProject]{models.DemoProjectDescriptor},
		typedTable[models.Testimonial]{models.TestimonialDescriptor},
		typedTable[models.FAQ]{models.FAQDescriptor},
		typedTable[models.ContactMessage]{models.ContactMessageDescriptor},
	}
}

// Files returns the fixture file names in load order.
func Files() []string {
	files := make([]string, 0, len(models.Descriptors()))
	for _, t := range tables() {
		files = append(files, t.descriptor().FixtureFile)
	}
	return files
}

// Export writes one indented JSON array per record kind into dir.
func Export(ctx context.Context, db *gorm.DB, dir string) ([]Result, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(tables()))
	for _, t := range tables() {
		file := t.descriptor().FixtureFile
		records, n, err := t.dump(ctx, db)
		if err != nil {
			return results, fmt.Errorf("export %s: %w", t.descriptor().Name, err)
		}

		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return results, fmt.Errorf("encode %s: %w", file, err)
		}
		if err := os.WriteFile(filepath.Join(dir, file), append(data, '\n'), 0o644); err != nil {
			return results, err
		}

		log.Info().Str("file", file).Int("records", n).Msg("Exported fixture")
		results = append(results, Result{File: file, Records: n})
	}
	return results, nil
}

// Import loads every fixture file present in dir inside one transaction. A missing file
// is skipped. Loading into a table that already holds rows fails with a conflict and
// nothing is written.
func Import(ctx context.Context, db *gorm.DB, dir string) ([]Result, error) {
	var results []Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		results = results[:0]
		for _, t := range tables() {
			file := t.descriptor().FixtureFile
			data, err := os.ReadFile(filepath.Join(dir, file))
			if errors.Is(err, fs.ErrNotExist) {
				log.Debug().Str("file", file).Msg("Fixture file not found, skipping")
				continue
			}
			if err != nil {
				return err
			}

			n, err := t.load(ctx, tx, data)
			if err != nil {
				return fmt.Errorf("import %s: %w", file, err)
			}
			results = append(results, Result{File: file, Records: n})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, r := range results {
		log.Info().Str("file", r.File).Int("records", r.Records).Msg("Imported fixture")
	}
	return results, nil
}
