package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/omikunle/app/models"
	"github.com/shashiranjanraj/omikunle/pkg/workerpool"
)

// ---- in-memory fakes ----

type fakeOrderStore struct {
	mu        sync.Mutex
	orders    map[primitive.ObjectID]models.Order
	createErr error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[primitive.ObjectID]models.Order{}}
}

func (s *fakeOrderStore) Create(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	order.ID = primitive.NewObjectID()
	if order.DateOrdered.IsZero() {
		order.DateOrdered = time.Now()
	}
	s.orders[order.ID] = *order
	return nil
}

func (s *fakeOrderStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[id]; ok {
		return &o, nil
	}
	return nil, nil
}

func (s *fakeOrderStore) All(_ context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateOrdered.After(out[j].DateOrdered) })
	return out, nil
}

func (s *fakeOrderStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	o.Status = status
	s.orders[id] = o
	return &o, nil
}

func (s *fakeOrderStore) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return false, nil
	}
	delete(s.orders, id)
	return true, nil
}

func (s *fakeOrderStore) TotalSales(_ context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, o := range s.orders {
		total += o.TotalPrice
	}
	return total, nil
}

type fakeItemStore struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.OrderItem
}

func newFakeItemStore() *fakeItemStore {
	return &fakeItemStore{items: map[primitive.ObjectID]models.OrderItem{}}
}

func (s *fakeItemStore) Create(_ context.Context, item *models.OrderItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = primitive.NewObjectID()
	s.items[item.ID] = *item
	return nil
}

func (s *fakeItemStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if it, ok := s.items[id]; ok {
		return &it, nil
	}
	return nil, nil
}

func (s *fakeItemStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

func (s *fakeItemStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

type fakeProductStore struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]models.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: map[primitive.ObjectID]models.Product{}}
}

func (s *fakeProductStore) add(price float64) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := primitive.NewObjectID()
	s.products[id] = models.Product{ID: id, Name: "p", Price: price}
	return id
}

func (s *fakeProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

type fakeCategoryStore struct {
	categories map[primitive.ObjectID]models.Category
}

func (s *fakeCategoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	if c, ok := s.categories[id]; ok {
		return &c, nil
	}
	return nil, nil
}

type fakeUserStore struct {
	users map[primitive.ObjectID]models.User
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

type orderFixture struct {
	svc      *OrderService
	orders   *fakeOrderStore
	items    *fakeItemStore
	products *fakeProductStore
	users    *fakeUserStore
	pool     *workerpool.Pool
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	f := &orderFixture{
		orders:   newFakeOrderStore(),
		items:    newFakeItemStore(),
		products: newFakeProductStore(),
		users:    &fakeUserStore{users: map[primitive.ObjectID]models.User{}},
	}
	f.pool = workerpool.New(4)
	t.Cleanup(f.pool.Shutdown)

	f.svc = NewOrderService(f.orders, f.items, f.products, &fakeCategoryStore{}, f.users, f.pool)
	return f
}

func submitInput(userID primitive.ObjectID, items ...OrderItemInput) SubmitOrderInput {
	return SubmitOrderInput{
		Items:            items,
		ShippingAddress1: "1 Main St",
		City:             "Lagos",
		Zip:              "100001",
		Country:          "NG",
		Phone:            "+2340000000",
		Status:           "Pending",
		UserID:           userID,
	}
}

// ---- tests ----

func TestSubmitComputesTotalFromProductPrices(t *testing.T) {
	f := newOrderFixture(t)

	p1 := f.products.add(500)
	p2 := f.products.add(19.99)

	order, err := f.svc.Submit(context.Background(), submitInput(primitive.NewObjectID(),
		OrderItemInput{Quantity: 2, ProductID: p1},
		OrderItemInput{Quantity: 3, ProductID: p2},
	))
	require.NoError(t, err)

	assert.InDelta(t, 2*500+3*19.99, order.TotalPrice, 1e-9)
	assert.Len(t, order.OrderItemIDs, 2)
	assert.Equal(t, 2, f.items.len())
}

func TestSubmitPreservesItemOrder(t *testing.T) {
	f := newOrderFixture(t)

	inputs := make([]OrderItemInput, 8)
	for i := range inputs {
		inputs[i] = OrderItemInput{Quantity: i + 1, ProductID: f.products.add(float64(i))}
	}

	order, err := f.svc.Submit(context.Background(), submitInput(primitive.NewObjectID(), inputs...))
	require.NoError(t, err)
	require.Len(t, order.OrderItemIDs, len(inputs))

	// The persisted id at position i must point at the item created from
	// input i.
	for i, id := range order.OrderItemIDs {
		item, err := f.items.FindByID(context.Background(), id)
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, inputs[i].Quantity, item.Quantity)
		assert.Equal(t, inputs[i].ProductID, item.ProductID)
	}
}

func TestSubmitBrokenProductReferenceContributesZero(t *testing.T) {
	f := newOrderFixture(t)

	real := f.products.add(100)
	ghost := primitive.NewObjectID() // never added

	order, err := f.svc.Submit(context.Background(), submitInput(primitive.NewObjectID(),
		OrderItemInput{Quantity: 1, ProductID: real},
		OrderItemInput{Quantity: 5, ProductID: ghost},
	))
	require.NoError(t, err)

	assert.InDelta(t, 100.0, order.TotalPrice, 1e-9)
	assert.Len(t, order.OrderItemIDs, 2, "the broken item is still part of the order")
}

func TestSubmitOrderPersistenceFailure(t *testing.T) {
	f := newOrderFixture(t)
	f.orders.createErr = errors.New("write concern failed")

	p := f.products.add(10)
	_, err := f.svc.Submit(context.Background(), submitInput(primitive.NewObjectID(),
		OrderItemInput{Quantity: 1, ProductID: p},
	))

	assert.ErrorIs(t, err, ErrOrderNotCreated)
	// Items created before the failure are not rolled back.
	assert.Equal(t, 1, f.items.len())
}

func TestDeleteCascadesToAllItems(t *testing.T) {
	f := newOrderFixture(t)

	p := f.products.add(5)
	order, err := f.svc.Submit(context.Background(), submitInput(primitive.NewObjectID(),
		OrderItemInput{Quantity: 1, ProductID: p},
		OrderItemInput{Quantity: 2, ProductID: p},
		OrderItemInput{Quantity: 3, ProductID: p},
	))
	require.NoError(t, err)
	require.Equal(t, 3, f.items.len())

	deleted, err := f.svc.Delete(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	assert.Equal(t, 0, f.items.len(), "every line item is gone before delete returns")

	got, err := f.orders.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteUnknownOrder(t *testing.T) {
	f := newOrderFixture(t)

	deleted, err := f.svc.Delete(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUpdateStatus(t *testing.T) {
	f := newOrderFixture(t)

	p := f.products.add(1)
	order, err := f.svc.Submit(context.Background(), submitInput(primitive.NewObjectID(),
		OrderItemInput{Quantity: 1, ProductID: p},
	))
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(context.Background(), order.ID, "Shipped")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Shipped", updated.Status)

	missing, err := f.svc.UpdateStatus(context.Background(), primitive.NewObjectID(), "Shipped")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListResolvesUserAndRendersDate(t *testing.T) {
	f := newOrderFixture(t)

	userID := primitive.NewObjectID()
	f.users.users[userID] = models.User{ID: userID, Name: "Ada"}

	p := f.products.add(10)
	first, err := f.svc.Submit(context.Background(), submitInput(userID, OrderItemInput{Quantity: 1, ProductID: p}))
	require.NoError(t, err)

	// Make the second order strictly newer.
	older := f.orders.orders[first.ID]
	older.DateOrdered = time.Date(2023, time.March, 3, 12, 0, 0, 0, time.UTC)
	f.orders.orders[first.ID] = older

	second, err := f.svc.Submit(context.Background(), submitInput(userID, OrderItemInput{Quantity: 2, ProductID: p}))
	require.NoError(t, err)

	newer := f.orders.orders[second.ID]
	newer.DateOrdered = time.Date(2023, time.March, 21, 12, 0, 0, 0, time.UTC)
	f.orders.orders[second.ID] = newer

	summaries, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, second.ID, summaries[0].ID, "newest first")
	assert.Equal(t, "2023 March 21st", summaries[0].DateOrdered)
	assert.Equal(t, "2023 March 3rd", summaries[1].DateOrdered)
	assert.Equal(t, "Ada", summaries[0].User.Name)
}

func TestGetResolvesTwoLevels(t *testing.T) {
	f := newOrderFixture(t)

	userID := primitive.NewObjectID()
	f.users.users[userID] = models.User{ID: userID, Name: "Ada"}

	p := f.products.add(25)
	order, err := f.svc.Submit(context.Background(), submitInput(userID,
		OrderItemInput{Quantity: 4, ProductID: p},
	))
	require.NoError(t, err)

	detail, err := f.svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, detail)

	assert.Equal(t, "Ada", detail.User.Name)
	require.Len(t, detail.OrderItems, 1)
	require.NotNil(t, detail.OrderItems[0].Product)
	assert.InDelta(t, 25.0, detail.OrderItems[0].Product.Price, 1e-9)
	assert.Equal(t, 4, detail.OrderItems[0].Quantity)
}

func TestGetUnknownOrder(t *testing.T) {
	f := newOrderFixture(t)

	detail, err := f.svc.Get(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Nil(t, detail)
}

func TestTotalSales(t *testing.T) {
	f := newOrderFixture(t)

	total, err := f.svc.TotalSales(context.Background())
	require.NoError(t, err)
	assert.Zero(t, total, "no orders yet")

	p1 := f.products.add(500)
	for i := 0; i < 2; i++ {
		_, err := f.svc.Submit(context.Background(), submitInput(primitive.NewObjectID(),
			OrderItemInput{Quantity: 1, ProductID: p1},
		))
		require.NoError(t, err)
	}

	total, err = f.svc.TotalSales(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, total, 1e-9)
}

func TestFormatOrderDate(t *testing.T) {
	cases := []struct {
		day  int
		want string
	}{
		{1, "2023 March 1st"},
		{2, "2023 March 2nd"},
		{3, "2023 March 3rd"},
		{4, "2023 March 4th"},
		{11, "2023 March 11th"},
		{12, "2023 March 12th"},
		{13, "2023 March 13th"},
		{21, "2023 March 21st"},
		{22, "2023 March 22nd"},
		{23, "2023 March 23rd"},
		{30, "2023 March 30th"},
	}

	for _, tc := range cases {
		got := FormatOrderDate(time.Date(2023, time.March, tc.day, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, tc.want, got)
	}
}
