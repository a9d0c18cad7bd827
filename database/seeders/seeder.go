// Package seeders fills an empty database with development fixtures.
package seeders

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/omikunle/pkg/database"
	"github.com/shashiranjanraj/omikunle/pkg/logger"
)

// Seeder populates one collection. Seeders are idempotent: a collection that
// already has documents is left alone.
type Seeder interface {
	Name() string
	Seed(ctx context.Context, db *database.DB) error
}

// Registry is the ordered seeder list; categories must run before products
// so product fixtures can reference them.
func Registry() []Seeder {
	return []Seeder{
		&CategorySeeder{},
		&ProductSeeder{},
		&UserSeeder{},
	}
}

// Run executes every registered seeder in order, stopping at the first error.
func Run(ctx context.Context, db *database.DB) error {
	for _, s := range Registry() {
		if err := s.Seed(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		logger.Info("seeded", "seeder", s.Name())
	}
	return nil
}
