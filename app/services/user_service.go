package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/omikunle/app/models"
	"github.com/shashiranjanraj/omikunle/pkg/auth"
	"github.com/shashiranjanraj/omikunle/pkg/logger"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password,
// so a login failure never reveals which of the two it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the slice of the user repository the service needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	All(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// UserService handles registration, login and account queries.
type UserService struct {
	users UserStore
	auth  *auth.Manager
}

func NewUserService(users UserStore, auth *auth.Manager) *UserService {
	return &UserService{users: users, auth: auth}
}

// RegisterInput is the validated registration payload.
type RegisterInput struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Phone     string `json:"phone" validate:"required"`
	IsAdmin   bool   `json:"isAdmin" validate:"nullable,boolean"`
	Street    string `json:"street" validate:"nullable"`
	Apartment string `json:"apartment" validate:"nullable"`
	Zip       string `json:"zip" validate:"nullable"`
	City      string `json:"city" validate:"nullable"`
	Country   string `json:"country" validate:"nullable"`
}

// Register hashes the password and persists the account. A duplicate email
// surfaces as repositories.ErrDuplicateEmail.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
		IsAdmin:      in.IsAdmin,
		Street:       in.Street,
		Apartment:    in.Apartment,
		Zip:          in.Zip,
		City:         in.City,
		Country:      in.Country,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.WithCtx(ctx).Info("user registered", "user_id", user.ID.Hex(), "email", user.Email)
	return user, nil
}

// Login verifies the credentials and issues a signed token carrying the user
// id and the admin flag.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.auth.GenerateToken(user.ID.Hex(), user.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// List returns every account.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.All(ctx)
}

// Get returns one account, or (nil, nil) when the id does not resolve.
func (s *UserService) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// Delete removes an account; the bool reports whether it existed.
func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return s.users.Delete(ctx, id)
}

// Count returns the number of registered users.
func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.users.Count(ctx)
}
