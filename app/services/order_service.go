// Package services holds the business logic between the HTTP controllers and
// the MongoDB repositories. Stores are consumed through narrow interfaces so
// the logic is testable against in-memory fakes.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/omikunle/app/models"
	"github.com/shashiranjanraj/omikunle/pkg/logger"
	"github.com/shashiranjanraj/omikunle/pkg/metrics"
	"github.com/shashiranjanraj/omikunle/pkg/workerpool"
)

// ErrOrderNotCreated reports that the final order persistence failed; the
// submission as a whole is rejected as a bad request.
var ErrOrderNotCreated = errors.New("the order cannot be created")

// OrderStore is the slice of the order repository the service needs.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	All(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	TotalSales(ctx context.Context) (float64, error)
}

// OrderItemStore persists order line items.
type OrderItemStore interface {
	Create(ctx context.Context, item *models.OrderItem) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.OrderItem, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProductResolver resolves product references during price aggregation and
// nested order reads.
type ProductResolver interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

// CategoryResolver resolves a product's category for two-level order reads.
type CategoryResolver interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
}

// UserResolver resolves the order's user reference to a display name.
type UserResolver interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// OrderService implements the order submission workflow and the order query
// surface.
type OrderService struct {
	orders     OrderStore
	items      OrderItemStore
	products   ProductResolver
	categories CategoryResolver
	users      UserResolver
	pool       *workerpool.Pool
}

func NewOrderService(orders OrderStore, items OrderItemStore, products ProductResolver, categories CategoryResolver, users UserResolver, pool *workerpool.Pool) *OrderService {
	return &OrderService{
		orders:     orders,
		items:      items,
		products:   products,
		categories: categories,
		users:      users,
		pool:       pool,
	}
}

// OrderItemInput is one {product, quantity} pair of a submission.
type OrderItemInput struct {
	Quantity  int                `json:"quantity" validate:"required,gte=1"`
	ProductID primitive.ObjectID `json:"product" validate:"required"`
}

// SubmitOrderInput is the validated order submission payload.
type SubmitOrderInput struct {
	Items            []OrderItemInput
	ShippingAddress1 string
	ShippingAddress2 string
	City             string
	Zip              string
	Country          string
	Phone            string
	Status           string
	UserID           primitive.ObjectID
}

// Submit runs the order creation workflow:
//
//  1. Every input pair becomes a persisted OrderItem. Creations run
//     concurrently; the resulting id sequence preserves input order.
//  2. Each persisted item is re-fetched and its product reference resolved to
//     the product's current price, again concurrently. A reference that does
//     not resolve contributes zero instead of failing the order.
//  3. The total is the plain sum of quantity×price contributions.
//  4. The order document is persisted with the item id sequence, the total,
//     and the passthrough shipping fields.
//
// Only a failure of the final order persistence rejects the submission;
// already-created line items are not rolled back.
func (s *OrderService) Submit(ctx context.Context, in SubmitOrderInput) (*models.Order, error) {
	log := logger.WithCtx(ctx)

	itemIDs := make([]primitive.ObjectID, len(in.Items))
	createErrs := make([]error, len(in.Items))

	g := s.pool.Group()
	for i := range in.Items {
		i := i
		g.Go(func() {
			item := &models.OrderItem{
				Quantity:  in.Items[i].Quantity,
				ProductID: in.Items[i].ProductID,
			}
			if err := s.items.Create(ctx, item); err != nil {
				createErrs[i] = err
				return
			}
			itemIDs[i] = item.ID
		})
	}
	g.Wait()

	for _, err := range createErrs {
		if err != nil {
			metrics.OrdersSubmitted.WithLabelValues("failed").Inc()
			return nil, fmt.Errorf("create order items: %w", err)
		}
	}

	contributions := make([]float64, len(itemIDs))

	g = s.pool.Group()
	for i := range itemIDs {
		i := i
		g.Go(func() {
			contributions[i] = s.itemContribution(ctx, itemIDs[i])
		})
	}
	g.Wait()

	var total float64
	for _, c := range contributions {
		total += c
	}

	order := &models.Order{
		OrderItemIDs:     itemIDs,
		ShippingAddress1: in.ShippingAddress1,
		ShippingAddress2: in.ShippingAddress2,
		City:             in.City,
		Zip:              in.Zip,
		Country:          in.Country,
		Phone:            in.Phone,
		Status:           in.Status,
		TotalPrice:       total,
		UserID:           in.UserID,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		// Line items created above are left behind: there is no
		// multi-document transaction tying them to the order.
		log.Error("order persistence failed", "error", err, "items", len(itemIDs))
		metrics.OrdersSubmitted.WithLabelValues("failed").Inc()
		return nil, ErrOrderNotCreated
	}

	metrics.OrdersSubmitted.WithLabelValues("success").Inc()
	log.Info("order created", "order_id", order.ID.Hex(), "total", order.TotalPrice, "items", len(itemIDs))
	return order, nil
}

// itemContribution re-fetches a persisted line item and resolves its product
// to compute price×quantity. Any resolution failure contributes zero.
func (s *OrderService) itemContribution(ctx context.Context, itemID primitive.ObjectID) float64 {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil || item == nil {
		logger.WithCtx(ctx).Warn("order item did not resolve", "item_id", itemID.Hex())
		return 0
	}

	product, err := s.products.FindByID(ctx, item.ProductID)
	if err != nil || product == nil {
		logger.WithCtx(ctx).Warn("product reference did not resolve", "product_id", item.ProductID.Hex())
		return 0
	}

	return product.Price * float64(item.Quantity)
}

// Delete removes an order and cascades to its line items. Every line-item
// deletion completes before the delete is reported successful. Returns false
// when the order id does not resolve.
func (s *OrderService) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if order == nil {
		return false, nil
	}

	deleteErrs := make([]error, len(order.OrderItemIDs))

	g := s.pool.Group()
	for i := range order.OrderItemIDs {
		i := i
		g.Go(func() {
			deleteErrs[i] = s.items.Delete(ctx, order.OrderItemIDs[i])
		})
	}
	g.Wait()

	for _, err := range deleteErrs {
		if err != nil {
			return false, fmt.Errorf("cascade delete order items: %w", err)
		}
	}

	if _, err := s.orders.Delete(ctx, id); err != nil {
		return false, err
	}

	logger.WithCtx(ctx).Info("order deleted", "order_id", id.Hex(), "items", len(order.OrderItemIDs))
	return true, nil
}

// UpdateStatus replaces the order's status field only. Returns (nil, nil)
// when the id does not resolve.
func (s *OrderService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	return s.orders.UpdateStatus(ctx, id, status)
}

// List returns all orders newest-first, with the user reference resolved to
// the display name and the order date rendered human-readable.
func (s *OrderService) List(ctx context.Context) ([]models.OrderSummary, error) {
	orders, err := s.orders.All(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.OrderSummary, 0, len(orders))
	for _, order := range orders {
		summary := models.OrderSummary{
			Order:       order,
			User:        models.UserName{ID: order.UserID},
			DateOrdered: FormatOrderDate(order.DateOrdered),
		}
		if user, err := s.users.FindByID(ctx, order.UserID); err == nil && user != nil {
			summary.User.Name = user.Name
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Get returns one order with two levels of reference resolution: the user's
// name, and each line item's product with the product's category inside it.
// Returns (nil, nil) when the id does not resolve.
func (s *OrderService) Get(ctx context.Context, id primitive.ObjectID) (*models.OrderDetail, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}

	detail := &models.OrderDetail{
		Order:      *order,
		User:       models.UserName{ID: order.UserID},
		OrderItems: make([]models.OrderItemDetail, 0, len(order.OrderItemIDs)),
	}

	if user, err := s.users.FindByID(ctx, order.UserID); err == nil && user != nil {
		detail.User.Name = user.Name
	}

	for _, itemID := range order.OrderItemIDs {
		item, err := s.items.FindByID(ctx, itemID)
		if err != nil || item == nil {
			continue
		}

		itemDetail := models.OrderItemDetail{OrderItem: *item}
		if product, err := s.products.FindByID(ctx, item.ProductID); err == nil && product != nil {
			pd := models.ProductDetail{Product: *product}
			if category, err := s.categories.FindByID(ctx, product.CategoryID); err == nil && category != nil {
				pd.Category = category
			}
			itemDetail.Product = &pd
		}
		detail.OrderItems = append(detail.OrderItems, itemDetail)
	}

	return detail, nil
}

// TotalSales sums totalPrice across all orders; an empty store yields zero.
func (s *OrderService) TotalSales(ctx context.Context) (float64, error) {
	return s.orders.TotalSales(ctx)
}

// FormatOrderDate renders a timestamp as "<year> <full month name>
// <day><ordinal suffix>", e.g. "2023 March 3rd".
func FormatOrderDate(t time.Time) string {
	day := t.Day()
	return fmt.Sprintf("%d %s %d%s", t.Year(), t.Month().String(), day, daySuffix(day))
}

// daySuffix returns the English ordinal suffix for a day of month.
// Days 11–13 are always "th".
func daySuffix(day int) string {
	if day > 3 && day < 21 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
