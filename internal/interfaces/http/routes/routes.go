// internal/interfaces/http/routes/routes.go
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/domain/purchase"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/flash"
	"gorm.io/gorm"
)

// Dependencies holds the services the storefront routes are built from
type Dependencies struct {
	Config   *config.Config
	Log      *logrus.Logger
	Products *product.Service
	Images   *product.ImageStore
	Cart     *cart.Service
	Flashes  flash.Store
}

// NewDependencies wires the gorm repositories and the Redis flash store
func NewDependencies(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log *logrus.Logger) *Dependencies {
	products := product.NewService(product.NewGormRepository(db), log)

	return &Dependencies{
		Config:   cfg,
		Log:      log,
		Products: products,
		Images:   product.NewImageStore(cfg.Catalog.ImagePath, cfg.Catalog.ThumbnailMaxWidth, log),
		Cart:     cart.NewService(products, purchase.NewGormRepository(db), log),
		Flashes:  flash.NewRedisStore(redisClient, cfg.Flash.TTL),
	}
}

// SetupRoutes registers every session-bound storefront route
func SetupRoutes(r gin.IRouter, deps *Dependencies) {
	views := handlers.NewViews(deps.Flashes, deps.Cart, deps.Log)

	pages := r.Group("")
	pages.Use(middleware.Session(deps.Config, deps.Log))
	{
		pages.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusFound, "/product/")
		})
		pages.GET("/error", views.ErrorPage)
	}

	SetupProductRoutes(pages, deps, views)
	SetupCartRoutes(pages, deps, views)
}

// SetupProductRoutes sets up catalog routes
func SetupProductRoutes(rg *gin.RouterGroup, deps *Dependencies, views *handlers.Views) {
	productHandler := handlers.NewProductHandler(deps.Products, deps.Images, views, deps.Config)

	products := rg.Group("/product")
	{
		products.GET("/", productHandler.Index)
		products.GET("/about", productHandler.About)
		products.GET("/detail/:id", productHandler.Detail)
		products.GET("/:id/image", productHandler.Image)
	}
}

// SetupCartRoutes sets up shopping cart routes
func SetupCartRoutes(rg *gin.RouterGroup, deps *Dependencies, views *handlers.Views) {
	cartHandler := handlers.NewCartHandler(deps.Cart, views)

	carts := rg.Group("/cart")
	{
		carts.GET("", cartHandler.View)
		carts.POST("/add", cartHandler.Add)
		carts.POST("/update", cartHandler.Update)
		carts.POST("/remove", cartHandler.Remove)
		carts.POST("/empty", cartHandler.Empty)
	}
}
