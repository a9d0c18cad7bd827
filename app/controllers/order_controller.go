// Package controllers maps HTTP requests onto the service layer: binding and
// validating inputs, translating ids, and shaping envelope responses.
package controllers

import (
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/omikunle/app/services"
	"github.com/shashiranjanraj/omikunle/pkg/bind"
	"github.com/shashiranjanraj/omikunle/pkg/response"
	"github.com/shashiranjanraj/omikunle/pkg/router"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

type createOrderRequest struct {
	// An empty item list is accepted and produces a zero-total order.
	OrderItems       []services.OrderItemInput `json:"orderItems" validate:"nullable"`
	ShippingAddress1 string                    `json:"shippingAddress1" validate:"required"`
	ShippingAddress2 string                    `json:"shippingAddress2" validate:"nullable"`
	City             string                    `json:"city" validate:"required"`
	Zip              string                    `json:"zip" validate:"required"`
	Country          string                    `json:"country" validate:"required"`
	Phone            string                    `json:"phone" validate:"required"`
	Status           string                    `json:"status" validate:"nullable"`
	UserID           primitive.ObjectID        `json:"user" validate:"required"`
}

type updateOrderRequest struct {
	Status string `json:"status" validate:"required"`
}

// List returns all orders, newest first.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := c.orders.List(r.Context())
	if err != nil {
		response.FailErr(w, err)
		return
	}
	response.Success(w, summaries)
}

// Get returns one order with its items, products and user resolved.
func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r)
	if !ok {
		return
	}

	detail, err := c.orders.Get(r.Context(), id)
	if err != nil {
		response.FailErr(w, err)
		return
	}
	if detail == nil {
		response.NotFound(w, "order not found!")
		return
	}
	response.Success(w, detail)
}

// Create runs the order submission workflow.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	for _, item := range req.OrderItems {
		if item.Quantity < 1 || item.ProductID.IsZero() {
			response.ValidationError(w, map[string]string{
				"orderItems": "Each order item needs a product and a quantity of at least 1.",
			})
			return
		}
	}

	status := req.Status
	if status == "" {
		status = "Pending"
	}

	order, err := c.orders.Submit(r.Context(), services.SubmitOrderInput{
		Items:            req.OrderItems,
		ShippingAddress1: req.ShippingAddress1,
		ShippingAddress2: req.ShippingAddress2,
		City:             req.City,
		Zip:              req.Zip,
		Country:          req.Country,
		Phone:            req.Phone,
		Status:           status,
		UserID:           req.UserID,
	})
	if err != nil {
		response.Fail(w, http.StatusBadRequest, "the order cannot be created!")
		return
	}
	response.Created(w, order)
}

// UpdateStatus changes the order's status only.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r)
	if !ok {
		return
	}

	var req updateOrderRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		response.FailErr(w, err)
		return
	}
	if order == nil {
		response.NotFound(w, "order not found!")
		return
	}
	response.Success(w, order)
}

// Delete removes an order and all its line items.
func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r)
	if !ok {
		return
	}

	deleted, err := c.orders.Delete(r.Context(), id)
	if err != nil {
		response.FailErr(w, err)
		return
	}
	if !deleted {
		response.NotFound(w, "order not found!")
		return
	}
	response.OK(w, "the order is deleted!")
}

// TotalSales reports the sum of totalPrice across all orders.
func (c *OrderController) TotalSales(w http.ResponseWriter, r *http.Request) {
	total, err := c.orders.TotalSales(r.Context())
	if err != nil {
		response.FailErr(w, err)
		return
	}
	response.Success(w, map[string]float64{"totalsales": total})
}

// objectID parses the {id} route parameter; on a malformed id it writes a
// 400 and reports false.
func objectID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	raw := strings.TrimSpace(router.Param(r, "id"))
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}
