package repository

import "context"

// Store acceso a todos los repositorios atados a una misma conexión o transacción.
type Store interface {
	Products() ProductRepository
	Kardex() KardexRepository
	SalesOrders() SalesOrderRepository
	PurchaseOrders() PurchaseOrderRepository
	Invoices() InvoiceRepository
	Customers() CustomerRepository
	Suppliers() SupplierRepository
	Employees() EmployeeRepository
	Companies() CompanyRepository
	ServiceOrders() ServiceOrderRepository
}

// TxRunner ejecuta fn dentro de una transacción con un Store atado a ella.
// Si fn devuelve error se hace Rollback; en caso contrario Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(store Store) error) error
}
