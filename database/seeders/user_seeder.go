package seeders

import (
	"context"

	"github.com/shashiranjanraj/omikunle/app/models"
	"github.com/shashiranjanraj/omikunle/app/repositories"
	"github.com/shashiranjanraj/omikunle/pkg/auth"
	"github.com/shashiranjanraj/omikunle/pkg/database"
)

type UserSeeder struct{}

func (s *UserSeeder) Name() string { return "users" }

// Seed creates the initial admin account. The default password is meant for
// local development only.
func (s *UserSeeder) Seed(ctx context.Context, db *database.DB) error {
	repo := repositories.NewUserRepository(db)

	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}

	return repo.Create(ctx, &models.User{
		Name:         "Admin",
		Email:        "admin@example.com",
		PasswordHash: hash,
		Phone:        "+10000000000",
		IsAdmin:      true,
	})
}
