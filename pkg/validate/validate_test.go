package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type registrationInput struct {
	Name     string  `json:"name" validate:"required,min=2,max=50"`
	Email    string  `json:"email" validate:"required,email"`
	Age      int     `json:"age" validate:"nullable,gte=18,lte=120"`
	Role     string  `json:"role" validate:"nullable,in=admin,user,guest"`
	Score    float64 `json:"score" validate:"nullable,between=0,100"`
	Bio      string  `json:"bio" validate:"nullable,max=10"`
	Verified bool    `json:"verified" validate:"nullable,boolean"`
}

func TestStructValid(t *testing.T) {
	errs := Struct(registrationInput{
		Name:  "Ada",
		Email: "ada@example.com",
		Age:   30,
		Role:  "admin",
		Score: 99.5,
	})
	assert.Empty(t, errs)
}

func TestRequired(t *testing.T) {
	errs := Struct(registrationInput{Email: "ada@example.com"})
	assert.Equal(t, "The name field is required.", errs["name"])
}

func TestRequiredWhitespaceOnly(t *testing.T) {
	errs := Struct(registrationInput{Name: "   ", Email: "ada@example.com"})
	assert.Contains(t, errs, "name")
}

func TestEmail(t *testing.T) {
	errs := Struct(registrationInput{Name: "Ada", Email: "not-an-email"})
	assert.Equal(t, "The email must be a valid email address.", errs["email"])
}

func TestNullableSkipsEmpty(t *testing.T) {
	// Age is zero → nullable short-circuits gte=18.
	errs := Struct(registrationInput{Name: "Ada", Email: "ada@example.com"})
	assert.NotContains(t, errs, "age")
}

func TestNumericBounds(t *testing.T) {
	errs := Struct(registrationInput{Name: "Ada", Email: "ada@example.com", Age: 12})
	assert.Contains(t, errs, "age")

	errs = Struct(registrationInput{Name: "Ada", Email: "ada@example.com", Age: 150})
	assert.Contains(t, errs, "age")
}

func TestIn(t *testing.T) {
	errs := Struct(registrationInput{Name: "Ada", Email: "ada@example.com", Role: "root"})
	assert.Equal(t, "The selected role is invalid.", errs["role"])
}

func TestBetween(t *testing.T) {
	errs := Struct(registrationInput{Name: "Ada", Email: "ada@example.com", Score: 101})
	assert.Contains(t, errs, "score")
}

func TestStringLengths(t *testing.T) {
	errs := Struct(registrationInput{Name: "A", Email: "ada@example.com"})
	assert.Equal(t, "The name must be at least 2 characters.", errs["name"])

	errs = Struct(registrationInput{Name: "Ada", Email: "ada@example.com", Bio: "this bio is definitely too long"})
	assert.Contains(t, errs, "bio")
}

func TestFirstFailingRuleWins(t *testing.T) {
	// Empty name fails `required` before `min` gets a chance.
	errs := Struct(registrationInput{Email: "ada@example.com"})
	assert.Equal(t, "The name field is required.", errs["name"])
}

func TestPointerInput(t *testing.T) {
	errs := Struct(&registrationInput{Name: "Ada", Email: "ada@example.com"})
	assert.Empty(t, errs)
}

func TestRequiredObjectID(t *testing.T) {
	type ref struct {
		Product primitive.ObjectID `json:"product" validate:"required"`
	}

	errs := Struct(ref{})
	assert.Equal(t, "The product field is required.", errs["product"])

	errs = Struct(ref{Product: primitive.NewObjectID()})
	assert.Empty(t, errs)
}

func TestRequiredSlice(t *testing.T) {
	type payload struct {
		Items []int `json:"items" validate:"required"`
	}

	errs := Struct(payload{})
	assert.Contains(t, errs, "items")

	errs = Struct(payload{Items: []int{1}})
	assert.Empty(t, errs)
}
