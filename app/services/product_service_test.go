package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/omikunle/app/models"
)

type fakeCatalogStore struct {
	products map[primitive.ObjectID]models.Product
}

func newFakeCatalogStore() *fakeCatalogStore {
	return &fakeCatalogStore{products: map[primitive.ObjectID]models.Product{}}
}

func (s *fakeCatalogStore) Create(_ context.Context, p *models.Product) error {
	p.ID = primitive.NewObjectID()
	s.products[p.ID] = *p
	return nil
}

func (s *fakeCatalogStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	if p, ok := s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *fakeCatalogStore) All(_ context.Context, categoryIDs []primitive.ObjectID) ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.products {
		if len(categoryIDs) == 0 {
			out = append(out, p)
			continue
		}
		for _, id := range categoryIDs {
			if p.CategoryID == id {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (s *fakeCatalogStore) Update(_ context.Context, id primitive.ObjectID, p *models.Product) (*models.Product, error) {
	if _, ok := s.products[id]; !ok {
		return nil, nil
	}
	p.ID = id
	s.products[id] = *p
	return p, nil
}

func (s *fakeCatalogStore) UpdateImages(_ context.Context, id primitive.ObjectID, images []string) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	p.Images = images
	s.products[id] = p
	return &p, nil
}

func (s *fakeCatalogStore) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	if _, ok := s.products[id]; !ok {
		return false, nil
	}
	delete(s.products, id)
	return true, nil
}

func (s *fakeCatalogStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.products)), nil
}

func (s *fakeCatalogStore) Featured(_ context.Context, limit int64) ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.products {
		if !p.IsFeatured {
			continue
		}
		out = append(out, p)
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func newProductFixture() (*ProductService, *fakeCatalogStore, *fakeCategoryStore) {
	store := newFakeCatalogStore()
	categories := &fakeCategoryStore{categories: map[primitive.ObjectID]models.Category{}}
	return NewProductService(store, categories, nil), store, categories
}

func (s *fakeCategoryStore) add(name string) primitive.ObjectID {
	if s.categories == nil {
		s.categories = map[primitive.ObjectID]models.Category{}
	}
	id := primitive.NewObjectID()
	s.categories[id] = models.Category{ID: id, Name: name}
	return id
}

func TestProductCreateRejectsUnknownCategory(t *testing.T) {
	svc, store, _ := newProductFixture()

	_, err := svc.Create(context.Background(), ProductInput{
		Name:        "Lamp",
		Description: "A lamp",
		CategoryID:  primitive.NewObjectID(),
	})

	assert.ErrorIs(t, err, ErrInvalidCategory)
	assert.Empty(t, store.products)
}

func TestProductCreate(t *testing.T) {
	svc, _, categories := newProductFixture()
	catID := categories.add("Home")

	product, err := svc.Create(context.Background(), ProductInput{
		Name:         "Lamp",
		Description:  "A lamp",
		Price:        12.5,
		CategoryID:   catID,
		CountInStock: 3,
	})
	require.NoError(t, err)

	assert.False(t, product.ID.IsZero())
	assert.Equal(t, catID, product.CategoryID)
}

func TestProductUpdateRejectsUnknownCategory(t *testing.T) {
	svc, _, categories := newProductFixture()
	catID := categories.add("Home")

	product, err := svc.Create(context.Background(), ProductInput{
		Name:        "Lamp",
		Description: "A lamp",
		CategoryID:  catID,
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), product.ID, ProductInput{
		Name:        "Lamp v2",
		Description: "A lamp",
		CategoryID:  primitive.NewObjectID(),
	})
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestProductUpdateUnknownProduct(t *testing.T) {
	svc, _, categories := newProductFixture()
	catID := categories.add("Home")

	updated, err := svc.Update(context.Background(), primitive.NewObjectID(), ProductInput{
		Name:        "Ghost",
		Description: "n/a",
		CategoryID:  catID,
	})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestProductListResolvesCategories(t *testing.T) {
	svc, _, categories := newProductFixture()
	home := categories.add("Home")
	sports := categories.add("Sports")

	_, err := svc.Create(context.Background(), ProductInput{Name: "Lamp", Description: "d", CategoryID: home})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), ProductInput{Name: "Ball", Description: "d", CategoryID: sports})
	require.NoError(t, err)

	all, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, d := range all {
		require.NotNil(t, d.Category)
		assert.Equal(t, d.CategoryID, d.Category.ID)
	}

	filtered, err := svc.List(context.Background(), []primitive.ObjectID{sports})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Ball", filtered[0].Name)
}

func TestProductGet(t *testing.T) {
	svc, _, categories := newProductFixture()
	catID := categories.add("Home")

	created, err := svc.Create(context.Background(), ProductInput{Name: "Lamp", Description: "d", CategoryID: catID})
	require.NoError(t, err)

	detail, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, detail)
	require.NotNil(t, detail.Category)
	assert.Equal(t, "Home", detail.Category.Name)

	missing, err := svc.Get(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductCountAndFeatured(t *testing.T) {
	svc, _, categories := newProductFixture()
	catID := categories.add("Home")

	_, err := svc.Create(context.Background(), ProductInput{Name: "A", Description: "d", CategoryID: catID, IsFeatured: true})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), ProductInput{Name: "B", Description: "d", CategoryID: catID})
	require.NoError(t, err)

	count, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	featured, err := svc.Featured(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "A", featured[0].Name)
}

func TestProductDelete(t *testing.T) {
	svc, _, categories := newProductFixture()
	catID := categories.add("Home")

	created, err := svc.Create(context.Background(), ProductInput{Name: "A", Description: "d", CategoryID: catID})
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
