package ingest

import (
	"context"
	"embed"
	"fmt"
	"log"

	"gopkg.in/yaml.v3"

	"github.com/samuel/fed-rfq/internal/db"
	"github.com/samuel/fed-rfq/internal/models"
)

//go:embed config/seed_suppliers.yaml
var seedSuppliersYAML embed.FS

type seedSupplier struct {
	Name           string   `yaml:"name"`
	NaicsCodes     []string `yaml:"naics_codes"`
	Certifications []string `yaml:"certifications"`
	Capabilities   []string `yaml:"capabilities"`
	Rating         string   `yaml:"rating"`
	GSASchedule    bool     `yaml:"gsa_schedule"`
	ContactEmail   string   `yaml:"contact_email"`
}

type seedFile struct {
	Suppliers []seedSupplier `yaml:"suppliers"`
}

// SeedSuppliers loads the embedded supplier roster into the database. Existing
// suppliers (by name) are left alone, so the call is safe to repeat.
func SeedSuppliers(ctx context.Context, store *db.Store) (int, error) {
	data, err := seedSuppliersYAML.ReadFile("config/seed_suppliers.yaml")
	if err != nil {
		return 0, fmt.Errorf("failed to read seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("failed to parse seed file: %w", err)
	}

	existing, err := store.ListSuppliers(ctx, false)
	if err != nil {
		return 0, fmt.Errorf("failed to list suppliers: %w", err)
	}
	byName := make(map[string]bool, len(existing))
	for _, s := range existing {
		byName[s.Name] = true
	}

	created := 0
	for _, seed := range file.Suppliers {
		if seed.Name == "" || byName[seed.Name] {
			continue
		}
		_, err := store.CreateSupplier(ctx, models.Supplier{
			Name:           seed.Name,
			NaicsCodes:     seed.NaicsCodes,
			Certifications: seed.Certifications,
			Capabilities:   seed.Capabilities,
			Rating:         seed.Rating,
			GSASchedule:    seed.GSASchedule,
			Active:         true,
			ContactEmail:   seed.ContactEmail,
		})
		if err != nil {
			log.Printf("Failed to seed supplier %q: %v", seed.Name, err)
			continue
		}
		created++
	}

	return created, nil
}
