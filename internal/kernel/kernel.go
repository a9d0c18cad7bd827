// Package kernel wires the application together: repositories, services,
// controllers, the middleware stack and the route table, all from an explicit
// Config and the shared infrastructure handles.
package kernel

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/omikunle/app/controllers"
	"github.com/shashiranjanraj/omikunle/app/repositories"
	"github.com/shashiranjanraj/omikunle/app/routes"
	"github.com/shashiranjanraj/omikunle/app/services"
	"github.com/shashiranjanraj/omikunle/config"
	"github.com/shashiranjanraj/omikunle/pkg/auth"
	"github.com/shashiranjanraj/omikunle/pkg/cache"
	"github.com/shashiranjanraj/omikunle/pkg/database"
	"github.com/shashiranjanraj/omikunle/pkg/metrics"
	"github.com/shashiranjanraj/omikunle/pkg/middleware"
	"github.com/shashiranjanraj/omikunle/pkg/reqid"
	"github.com/shashiranjanraj/omikunle/pkg/router"
	"github.com/shashiranjanraj/omikunle/pkg/storage"
	"github.com/shashiranjanraj/omikunle/pkg/workerpool"
)

// submitPoolSize bounds the concurrency of order item fan-out.
const submitPoolSize = 16

// Kernel holds the composed application.
type Kernel struct {
	Router *router.Router
	Pool   *workerpool.Pool
}

// Deps are the infrastructure handles the kernel composes on top of.
type Deps struct {
	DB      *database.DB
	Cache   *cache.Store
	Storage *storage.Manager
}

// New builds the full application graph and mounts the routes.
func New(cfg *config.Config, deps Deps) *Kernel {
	pool := workerpool.New(submitPoolSize)
	authManager := auth.NewManager(cfg.JWTSecret)

	categoryRepo := repositories.NewCategoryRepository(deps.DB)
	productRepo := repositories.NewProductRepository(deps.DB)
	orderRepo := repositories.NewOrderRepository(deps.DB)
	orderItemRepo := repositories.NewOrderItemRepository(deps.DB)
	userRepo := repositories.NewUserRepository(deps.DB)

	orderService := services.NewOrderService(orderRepo, orderItemRepo, productRepo, categoryRepo, userRepo, pool)
	productService := services.NewProductService(productRepo, categoryRepo, deps.Cache)
	userService := services.NewUserService(userRepo, authManager)

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
		middleware.Auth(authManager, cfg.APIPrefix),
	)

	routes.RegisterAPI(r, cfg.APIPrefix, routes.Controllers{
		Orders:     controllers.NewOrderController(orderService),
		Products:   controllers.NewProductController(productService, deps.Storage),
		Categories: controllers.NewCategoryController(categoryRepo),
		Users:      controllers.NewUserController(userService),
	})

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return &Kernel{Router: r, Pool: pool}
}
