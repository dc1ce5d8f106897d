package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Zar-ufo/Pentagon/internal/config"
	"github.com/Zar-ufo/Pentagon/internal/handler"
	"github.com/Zar-ufo/Pentagon/internal/infra"
	"github.com/Zar-ufo/Pentagon/internal/middleware"
	"github.com/Zar-ufo/Pentagon/internal/repository"
	"github.com/Zar-ufo/Pentagon/internal/service"
	"github.com/Zar-ufo/Pentagon/internal/token"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	tokens := token.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTExpirationHours)*time.Hour)
	denylist := infra.NewRedisDenylist(rdb)
	mailer := infra.NewMailer(cfg)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, tokens, denylist)
	userSvc := service.NewUserService(userRepo)
	productSvc := service.NewProductService(productRepo)
	inventorySvc := service.NewInventoryService(inventoryRepo, productRepo)
	orderSvc := service.NewOrderService(orderRepo, productRepo, inventorySvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(userSvc)
	productsH := handler.NewProductsHandler(productSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc, mailer, cfg)
	ordersH := handler.NewOrdersHandler(orderSvc, orderRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth (public)
	r.POST("/api/login", middleware.LoginRateLimiter(), authH.Login)
	r.POST("/api/register", authH.Register)

	// Protected routes
	jwtMW := middleware.JWTAuth(tokens, denylist)
	api := r.Group("/api", jwtMW)
	{
		// Own account
		api.POST("/logout", authH.Logout)
		api.GET("/profile", authH.Profile)
		api.PUT("/profile", authH.UpdateProfile)
		api.POST("/change-password", authH.ChangePassword)

		// User administration — admin only, except the sales directory and
		// a user reading / editing their own row
		api.GET("/users/sales", middleware.Require(middleware.ResUsers, middleware.ActRead), usersH.SalesPeople)
		api.GET("/users/:id", middleware.Require(middleware.ResUsers, middleware.ActRead), usersH.Get)
		api.PUT("/users/:id", middleware.Require(middleware.ResUsers, middleware.ActWrite), usersH.Update)
		users := api.Group("/users", middleware.Require(middleware.ResUsers, middleware.ActManage))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.GET("/stats", usersH.Stats)
			users.DELETE("/:id", usersH.Deactivate)
			users.POST("/:id/reset-password", usersH.ResetPassword)
		}

		// Catalog — reads for everyone, writes admin only
		prodRead := middleware.Require(middleware.ResProducts, middleware.ActRead)
		api.GET("/products", prodRead, productsH.List)
		api.GET("/products/search", prodRead, productsH.Search)
		api.GET("/products/categories", prodRead, productsH.Categories)
		api.GET("/products/:id", prodRead, productsH.Get)
		prodWrite := api.Group("/products", middleware.Require(middleware.ResProducts, middleware.ActWrite))
		{
			prodWrite.POST("", productsH.Create)
			prodWrite.PUT("/:id", productsH.Update)
			prodWrite.DELETE("/:id", productsH.Deactivate)
		}

		// Inventory — reads for everyone, snapshot writes admin only
		invRead := middleware.Require(middleware.ResInventory, middleware.ActRead)
		api.GET("/inventory", invRead, inventoryH.List)
		api.GET("/inventory/product/:product_id", invRead, inventoryH.ProductHistory)
		api.GET("/inventory/stock-levels", invRead, inventoryH.StockLevels)
		api.GET("/inventory/low-stock", invRead, inventoryH.LowStock)
		invWrite := api.Group("/inventory", middleware.Require(middleware.ResInventory, middleware.ActWrite))
		{
			invWrite.POST("", inventoryH.Create)
			invWrite.PUT("/:id", inventoryH.Update)
			invWrite.POST("/low-stock/report", inventoryH.LowStockReport)
		}

		// Orders — ownership scoping happens in the service layer
		ordRead := middleware.Require(middleware.ResOrders, middleware.ActRead)
		ordWrite := middleware.Require(middleware.ResOrders, middleware.ActWrite)
		api.POST("/orders", ordWrite, ordersH.Create)
		api.GET("/orders", ordRead, ordersH.List)
		api.GET("/orders/summary", ordRead, ordersH.Summary)
		api.GET("/orders/daily-summary", ordRead, ordersH.DailySummary)
		api.GET("/orders/:id", ordRead, ordersH.Get)
		api.PUT("/orders/:id/status", ordWrite, ordersH.UpdateStatus)
		api.GET("/orders/:id/invoice", ordRead, ordersH.Invoice)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Static SPA fallback: unknown non-API paths serve the frontend bundle.
	if cfg.StaticDir != "" {
		r.NoRoute(spaFallback(cfg.StaticDir))
	}

	return r
}

func spaFallback(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "not found"})
			return
		}
		requested := filepath.Join(staticDir, filepath.Clean(c.Request.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			c.File(requested)
			return
		}
		index := filepath.Join(staticDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			c.File(index)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "not found"})
	}
}
