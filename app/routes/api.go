// Package routes declares the HTTP surface of the API.
package routes

import (
	"github.com/shashiranjanraj/omikunle/app/controllers"
	"github.com/shashiranjanraj/omikunle/pkg/middleware"
	"github.com/shashiranjanraj/omikunle/pkg/router"
)

// Controllers bundles the handler sets the API mounts.
type Controllers struct {
	Orders     *controllers.OrderController
	Products   *controllers.ProductController
	Categories *controllers.CategoryController
	Users      *controllers.UserController
}

// RegisterAPI mounts all endpoints under prefix (e.g. "/api/v1").
//
// Reads on products and categories are public; the auth middleware enforces a
// bearer token for everything else, and admin-only mutations additionally go
// through RequireAdmin.
func RegisterAPI(r *router.Router, prefix string, c Controllers) {
	api := r.Group(prefix)

	products := api.Group("/products")
	products.Get("/", "products.list", c.Products.List)
	products.Get("/get/count", "products.count", c.Products.Count)
	products.Get("/get/featured/{count}", "products.featured", c.Products.Featured)
	products.Get("/{id}", "products.get", c.Products.Get)
	products.Post("/", "products.create", c.Products.Create, middleware.RequireAdmin)
	products.Put("/{id}", "products.update", c.Products.Update, middleware.RequireAdmin)
	products.Put("/gallery-images/{id}", "products.gallery", c.Products.UploadGallery, middleware.RequireAdmin)
	products.Delete("/{id}", "products.delete", c.Products.Delete, middleware.RequireAdmin)

	categories := api.Group("/categories")
	categories.Get("/", "categories.list", c.Categories.List)
	categories.Get("/{id}", "categories.get", c.Categories.Get)
	categories.Post("/", "categories.create", c.Categories.Create, middleware.RequireAdmin)
	categories.Put("/{id}", "categories.update", c.Categories.Update, middleware.RequireAdmin)
	categories.Delete("/{id}", "categories.delete", c.Categories.Delete, middleware.RequireAdmin)

	orders := api.Group("/orders")
	orders.Get("/", "orders.list", c.Orders.List)
	orders.Get("/get/totalsales", "orders.totalsales", c.Orders.TotalSales, middleware.RequireAdmin)
	orders.Get("/{id}", "orders.get", c.Orders.Get)
	orders.Post("/", "orders.create", c.Orders.Create)
	orders.Put("/{id}", "orders.update", c.Orders.UpdateStatus, middleware.RequireAdmin)
	orders.Delete("/{id}", "orders.delete", c.Orders.Delete, middleware.RequireAdmin)

	users := api.Group("/users")
	users.Get("/", "users.list", c.Users.List, middleware.RequireAdmin)
	users.Get("/get/count", "users.count", c.Users.Count, middleware.RequireAdmin)
	users.Get("/{id}", "users.get", c.Users.Get)
	users.Post("/register", "users.register", c.Users.Register)
	users.Post("/login", "users.login", c.Users.Login)
	users.Delete("/{id}", "users.delete", c.Users.Delete, middleware.RequireAdmin)
}
