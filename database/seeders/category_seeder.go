package seeders

import (
	"context"

	"github.com/shashiranjanraj/omikunle/app/models"
	"github.com/shashiranjanraj/omikunle/app/repositories"
	"github.com/shashiranjanraj/omikunle/pkg/database"
)

type CategorySeeder struct{}

func (s *CategorySeeder) Name() string { return "categories" }

func (s *CategorySeeder) Seed(ctx context.Context, db *database.DB) error {
	repo := repositories.NewCategoryRepository(db)

	existing, err := repo.All(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	fixtures := []models.Category{
		{Name: "Electronics", Icon: "devices", Color: "#1E90FF"},
		{Name: "Home & Garden", Icon: "yard", Color: "#228B22"},
		{Name: "Beauty", Icon: "spa", Color: "#FF69B4"},
		{Name: "Sports", Icon: "sports_soccer", Color: "#FF8C00"},
	}
	for i := range fixtures {
		if err := repo.Create(ctx, &fixtures[i]); err != nil {
			return err
		}
	}
	return nil
}
