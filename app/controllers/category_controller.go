package controllers

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/omikunle/app/models"
	"github.com/shashiranjanraj/omikunle/pkg/bind"
	"github.com/shashiranjanraj/omikunle/pkg/response"
)

// CategoryStore is what the category endpoints need from persistence. The
// category surface is plain CRUD, so the controller talks to the repository
// directly.
type CategoryStore interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	All(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, id primitive.ObjectID, category *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type CategoryController struct {
	categories CategoryStore
}

func NewCategoryController(categories CategoryStore) *CategoryController {
	return &CategoryController{categories: categories}
}

type categoryRequest struct {
	Name  string `json:"name" validate:"required"`
	Icon  string `json:"icon" validate:"nullable"`
	Color string `json:"color" validate:"nullable"`
}

func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	categories, err := c.categories.All(r.Context())
	if err != nil {
		response.FailErr(w, err)
		return
	}
	response.Success(w, categories)
}

func (c *CategoryController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r)
	if !ok {
		return
	}

	category, err := c.categories.FindByID(r.Context(), id)
	if err != nil {
		response.FailErr(w, err)
		return
	}
	if category == nil {
		response.NotFound(w, "the category with the given ID was not found.")
		return
	}
	response.Success(w, category)
}

func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	category := &models.Category{Name: req.Name, Icon: req.Icon, Color: req.Color}
	if err := c.categories.Create(r.Context(), category); err != nil {
		response.Fail(w, http.StatusBadRequest, "the category cannot be created!")
		return
	}
	response.Created(w, category)
}

func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r)
	if !ok {
		return
	}

	var req categoryRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	category, err := c.categories.Update(r.Context(), id, &models.Category{
		Name:  req.Name,
		Icon:  req.Icon,
		Color: req.Color,
	})
	if err != nil {
		response.FailErr(w, err)
		return
	}
	if category == nil {
		response.NotFound(w, "the category with the given ID was not found.")
		return
	}
	response.Success(w, category)
}

func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r)
	if !ok {
		return
	}

	deleted, err := c.categories.Delete(r.Context(), id)
	if err != nil {
		response.FailErr(w, err)
		return
	}
	if !deleted {
		response.NotFound(w, "category not found!")
		return
	}
	response.OK(w, "the category is deleted!")
}
