package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-kardex/internal/application/auth"
	"github.com/jhoicas/erp-kardex/internal/application/kardex"
	"github.com/jhoicas/erp-kardex/internal/application/orders"
	"github.com/jhoicas/erp-kardex/internal/application/purchasing"
	"github.com/jhoicas/erp-kardex/internal/application/usecase"
	"github.com/jhoicas/erp-kardex/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	CompanyUC      *usecase.CompanyUseCase
	ProductUC      *usecase.ProductUseCase
	CustomerUC     *usecase.CustomerUseCase
	SupplierUC     *usecase.SupplierUseCase
	EmployeeUC     *usecase.EmployeeUseCase
	ServiceOrderUC *usecase.ServiceOrderUseCase
	KardexUC       *kardex.UseCase
	Orders         *orders.Service
	Purchasing     *purchasing.Service
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Auth y alta de empresa (públicos)
	authHandler := NewAuthHandler(deps.AuthUC)
	app.Post("/login/auth", authHandler.LoginAdmin)
	app.Post("/login/auth-employee", authHandler.LoginEmployee)
	app.Post("/admin/create-company", authHandler.CreateCompany)

	// Rutas protegidas: token válido y cuenta activa
	protected := app.Group("/", AuthMiddleware(deps.JWTSecret), RequireActiveAccount(deps.EmployeeUC))
	stockRoles := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/create", productHandler.Create)
	products.Get("/all", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Put("/:id/stock", stockRoles, productHandler.AdjustStock)
	products.Delete("/:id", productHandler.Delete)

	// Sales orders
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.Orders)
	ordersGroup.Post("/create", orderHandler.Create)
	ordersGroup.Get("/all", orderHandler.List)
	ordersGroup.Get("/last-number", orderHandler.LastOrderNumber)
	ordersGroup.Get("/customers/list", orderHandler.Customers)
	ordersGroup.Get("/edit/:id", orderHandler.GetForEdit)
	ordersGroup.Get("/:id", orderHandler.Get)
	ordersGroup.Put("/:id", orderHandler.Update)
	ordersGroup.Put("/:id/status", orderHandler.UpdateStatus)
	ordersGroup.Patch("/:id/cancel", orderHandler.Cancel)
	ordersGroup.Delete("/:id", orderHandler.Delete)

	// Purchase orders
	purchase := protected.Group("/purchase")
	purchaseHandler := NewPurchaseHandler(deps.Purchasing)
	purchase.Post("/create", purchaseHandler.Create)
	purchase.Get("/all", purchaseHandler.List)
	purchase.Get("/:orderNumber", purchaseHandler.GetByOrderNumber)
	purchase.Put("/:id", purchaseHandler.Update)
	purchase.Delete("/:id", purchaseHandler.Delete)

	// Invoices (entrada de stock)
	invoice := protected.Group("/invoice")
	invoiceHandler := NewInvoiceHandler(deps.Purchasing)
	invoice.Post("/create", stockRoles, invoiceHandler.Create)
	invoice.Get("/in/:order_id", invoiceHandler.ListByOrder)
	invoice.Get("/:id", invoiceHandler.GetByID)
	invoice.Get("/:id/pdf", invoiceHandler.PDF)

	// Kardex
	kardexGroup := protected.Group("/kardex")
	kardexHandler := NewKardexHandler(deps.KardexUC)
	kardexGroup.Post("/create", stockRoles, kardexHandler.Create)
	kardexGroup.Get("/products/:productId", kardexHandler.ByProduct)
	kardexGroup.Get("/products/:productId/export", kardexHandler.Export)
	kardexGroup.Get("/orders/:orderId", kardexHandler.ByOrder)

	// Service orders
	serviceOrders := protected.Group("/serviceOrders")
	serviceOrderHandler := NewServiceOrderHandler(deps.ServiceOrderUC)
	serviceOrders.Post("/create", serviceOrderHandler.Create)
	serviceOrders.Get("/all", serviceOrderHandler.List)
	serviceOrders.Get("/:id", serviceOrderHandler.GetByID)
	serviceOrders.Put("/:id", serviceOrderHandler.Update)
	serviceOrders.Put("/:id/status", serviceOrderHandler.UpdateStatus)
	serviceOrders.Delete("/:id", serviceOrderHandler.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/create", supplierHandler.Create)
	suppliers.Get("/all", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/create", customerHandler.Create)
	customers.Get("/all", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Employees (solo admin)
	employees := protected.Group("/employees", adminOnly)
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Post("/create", employeeHandler.Create)
	employees.Get("/all", employeeHandler.List)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", employeeHandler.Update)
	employees.Get("/:id/status", employeeHandler.GetStatus)
	employees.Put("/:id/status", employeeHandler.UpdateStatus)
	employees.Delete("/:id", employeeHandler.Delete)

	// Company del token
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/me", companyHandler.GetMine)
	companies.Put("/me", adminOnly, companyHandler.UpdateMine)
}
