package seeders

import (
	"context"

	"github.com/shashiranjanraj/omikunle/app/models"
	"github.com/shashiranjanraj/omikunle/app/repositories"
	"github.com/shashiranjanraj/omikunle/pkg/database"
)

type ProductSeeder struct{}

func (s *ProductSeeder) Name() string { return "products" }

func (s *ProductSeeder) Seed(ctx context.Context, db *database.DB) error {
	products := repositories.NewProductRepository(db)

	count, err := products.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories, err := repositories.NewCategoryRepository(db).All(ctx)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		return nil
	}

	fixtures := []models.Product{
		{
			Name:         "Wireless Headphones",
			Description:  "Over-ear wireless headphones with noise cancellation.",
			Brand:        "Acme Audio",
			Price:        129.99,
			CategoryID:   categories[0].ID,
			CountInStock: 40,
			Rating:       4.5,
			NumReviews:   212,
			IsFeatured:   true,
		},
		{
			Name:         "Smart Thermostat",
			Description:  "Programmable thermostat with app control.",
			Brand:        "HomeSense",
			Price:        89.50,
			CategoryID:   categories[0].ID,
			CountInStock: 25,
			Rating:       4.1,
			NumReviews:   87,
		},
		{
			Name:         "Garden Tool Set",
			Description:  "Five-piece stainless steel garden tool set.",
			Brand:        "GreenWorks",
			Price:        34.00,
			CategoryID:   categories[len(categories)-1].ID,
			CountInStock: 60,
			Rating:       4.7,
			NumReviews:   54,
			IsFeatured:   true,
		},
	}
	for i := range fixtures {
		if err := products.Create(ctx, &fixtures[i]); err != nil {
			return err
		}
	}
	return nil
}
