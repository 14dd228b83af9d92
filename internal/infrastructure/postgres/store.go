package postgres

import "github.com/jhoicas/erp-kardex/internal/domain/repository"

var _ repository.Store = (*Store)(nil)

// Store agrupa los repositorios sobre un mismo Querier (pool o tx).
type Store struct {
	q Querier
}

// NewStore construye el Store. Con el pool cada sentencia es su propia transacción.
func NewStore(q Querier) *Store {
	return &Store{q: q}
}

func (s *Store) Products() repository.ProductRepository { return NewProductRepository(s.q) }
func (s *Store) Kardex() repository.KardexRepository    { return NewKardexRepository(s.q) }
func (s *Store) SalesOrders() repository.SalesOrderRepository {
	return NewSalesOrderRepository(s.q)
}
func (s *Store) PurchaseOrders() repository.PurchaseOrderRepository {
	return NewPurchaseOrderRepository(s.q)
}
func (s *Store) Invoices() repository.InvoiceRepository   { return NewInvoiceRepository(s.q) }
func (s *Store) Customers() repository.CustomerRepository { return NewCustomerRepository(s.q) }
func (s *Store) Suppliers() repository.SupplierRepository { return NewSupplierRepository(s.q) }
func (s *Store) Employees() repository.EmployeeRepository { return NewEmployeeRepository(s.q) }
func (s *Store) Companies() repository.CompanyRepository  { return NewCompanyRepository(s.q) }
func (s *Store) ServiceOrders() repository.ServiceOrderRepository {
	return NewServiceOrderRepository(s.q)
}
