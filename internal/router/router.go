package router

import (
	"time"

	"github.com/leaox77/Inventory-System-Backend/internal/config"
	"github.com/leaox77/Inventory-System-Backend/internal/handler"
	"github.com/leaox77/Inventory-System-Backend/internal/middleware"
	"github.com/leaox77/Inventory-System-Backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Deps carries everything the router wires together.
type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Redis     *redis.Client
	Auth      service.AuthService
	Products  service.ProductService
	Inventory service.InventoryService
	Sales     service.SaleService
	Purchases service.PurchaseService
	Clients   service.ClientService
	Suppliers service.SupplierService
	Catalog   service.CatalogService
	Reports   service.ReportService
}

// New builds the HTTP surface. Every mutating business route is gated on a
// "resource:action" permission; superusers bypass all gates.
func New(d Deps) *gin.Engine {
	if d.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.ErrorHandler(),
		middleware.CORS(),
	)

	authH := handler.NewAuthHandler(d.Auth)
	productH := handler.NewProductHandler(d.Products)
	inventoryH := handler.NewInventoryHandler(d.Inventory)
	saleH := handler.NewSaleHandler(d.Sales)
	purchaseH := handler.NewPurchaseHandler(d.Purchases)
	clientH := handler.NewClientHandler(d.Clients)
	supplierH := handler.NewSupplierHandler(d.Suppliers)
	catalogH := handler.NewCatalogHandler(d.Catalog)
	reportH := handler.NewReportHandler(d.Reports)
	healthH := handler.NewHealthHandler(d.DB, d.Redis)

	r.GET("/health", healthH.Check)

	if d.Config.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/v1")

	// Public surface
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	v1.POST("/auth/login", loginLimiter.Middleware(), authH.Login)
	v1.POST("/auth/refresh", authH.Refresh)
	v1.GET("/price-check/:barcode", productH.PriceCheck)

	// Authenticated surface
	api := v1.Group("")
	api.Use(middleware.JWTAuth(d.Auth))

	perm := middleware.RequirePermission

	// Sales
	api.POST("/sales", perm("sales:create"), saleH.Create)
	api.GET("/sales", perm("sales:read"), saleH.List)
	api.GET("/sales/:id", perm("sales:read"), saleH.Get)
	api.GET("/sales/:id/receipt", perm("sales:read"), reportH.InvoicePDF)

	// Purchase orders
	api.POST("/purchase-orders", perm("purchase_orders:create"), purchaseH.Create)
	api.GET("/purchase-orders", perm("purchase_orders:read"), purchaseH.List)
	api.GET("/purchase-orders/:id", perm("purchase_orders:read"), purchaseH.Get)
	api.PATCH("/purchase-orders/:id/status", perm("purchase_orders:approve"), purchaseH.UpdateStatus)

	// Inventory
	api.GET("/inventory", perm("inventory:read"), inventoryH.List)
	api.GET("/inventory/low-stock", perm("inventory:read"), inventoryH.LowStock)
	api.GET("/inventory/:product_id/:branch_id", perm("inventory:read"), inventoryH.Get)
	api.POST("/inventory/adjust", perm("inventory:adjust"), inventoryH.Adjust)

	// Products
	api.POST("/products", perm("products:create"), productH.Create)
	api.GET("/products", perm("products:read"), productH.List)
	api.GET("/products/:id", perm("products:read"), productH.Get)
	api.PATCH("/products/:id", perm("products:update"), productH.Update)
	api.DELETE("/products/:id", perm("products:delete"), productH.Deactivate)
	api.POST("/products/:id/reactivate", perm("products:update"), productH.Reactivate)

	// Clients
	api.POST("/clients", perm("clients:create"), clientH.Create)
	api.GET("/clients", perm("clients:read"), clientH.List)
	api.GET("/clients/:id", perm("clients:read"), clientH.Get)
	api.GET("/clients/by-ci/:ci_nit", perm("clients:read"), clientH.GetByCINIT)
	api.PATCH("/clients/:id", perm("clients:update"), clientH.Update)
	api.DELETE("/clients/:id", perm("clients:delete"), clientH.Delete)

	// Suppliers
	api.POST("/suppliers", perm("suppliers:create"), supplierH.Create)
	api.GET("/suppliers", perm("suppliers:read"), supplierH.List)
	api.GET("/suppliers/:id", perm("suppliers:read"), supplierH.Get)
	api.PATCH("/suppliers/:id", perm("suppliers:update"), supplierH.Update)
	api.DELETE("/suppliers/:id", perm("suppliers:delete"), supplierH.Deactivate)

	// Reference data
	api.POST("/categories", perm("catalog:manage"), catalogH.CreateCategory)
	api.GET("/categories", catalogH.ListCategories)
	api.PUT("/categories/:id", perm("catalog:manage"), catalogH.UpdateCategory)
	api.DELETE("/categories/:id", perm("catalog:manage"), catalogH.DeleteCategory)

	api.POST("/unit-types", perm("catalog:manage"), catalogH.CreateUnitType)
	api.GET("/unit-types", catalogH.ListUnitTypes)
	api.DELETE("/unit-types/:id", perm("catalog:manage"), catalogH.DeleteUnitType)

	api.POST("/payment-methods", perm("catalog:manage"), catalogH.CreatePaymentMethod)
	api.GET("/payment-methods", catalogH.ListPaymentMethods)
	api.DELETE("/payment-methods/:id", perm("catalog:manage"), catalogH.DeactivatePaymentMethod)

	api.POST("/branches", perm("branches:manage"), catalogH.CreateBranch)
	api.GET("/branches", catalogH.ListBranches)
	api.GET("/branches/:id", catalogH.GetBranch)
	api.PUT("/branches/:id", perm("branches:manage"), catalogH.UpdateBranch)

	// Reports
	api.GET("/reports/sales", perm("reports:read"), reportH.SalesSummary)
	api.GET("/reports/sales.csv", perm("reports:read"), reportH.SalesCSV)
	api.GET("/reports/inventory.csv", perm("reports:read"), reportH.InventoryCSV)

	// User administration
	api.POST("/users", perm("users:manage"), authH.CreateUser)
	api.GET("/users", perm("users:manage"), authH.ListUsers)
	api.GET("/users/:id", perm("users:manage"), authH.GetUser)
	api.PATCH("/users/:id", perm("users:manage"), authH.UpdateUser)
	api.DELETE("/users/:id", perm("users:manage"), authH.DeactivateUser)
	api.POST("/users/:id/activate", perm("users:manage"), authH.ActivateUser)
	api.POST("/roles", perm("users:manage"), authH.CreateRole)
	api.GET("/roles", perm("users:manage"), authH.ListRoles)

	return r
}
