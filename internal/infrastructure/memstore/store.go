// Package memstore implementa repository.Store y repository.TxRunner en memoria.
// Las transacciones se serializan y trabajan sobre una copia del estado que solo
// se publica si el callback termina sin error; sirve como doble de prueba de los
// coordinadores y como almacén local sin PostgreSQL.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/repository"
)

var (
	_ repository.Store    = (*Store)(nil)
	_ repository.TxRunner = (*Store)(nil)
)

type data struct {
	companies      map[string]entity.Company
	employees      map[string]entity.Employee
	customers      map[string]entity.Customer
	suppliers      map[string]entity.Supplier
	products       map[string]entity.Product
	kardex         []entity.KardexEntry
	salesOrders    map[string]entity.SalesOrder
	orderItems     []entity.OrderItem
	purchaseOrders map[string]entity.PurchaseOrder
	purchaseItems  []entity.PurchaseOrderItem
	invoices       map[string]entity.Invoice
	serviceOrders  map[string]entity.ServiceOrder
}

func newData() *data {
	return &data{
		companies:      map[string]entity.Company{},
		employees:      map[string]entity.Employee{},
		customers:      map[string]entity.Customer{},
		suppliers:      map[string]entity.Supplier{},
		products:       map[string]entity.Product{},
		salesOrders:    map[string]entity.SalesOrder{},
		purchaseOrders: map[string]entity.PurchaseOrder{},
		invoices:       map[string]entity.Invoice{},
		serviceOrders:  map[string]entity.ServiceOrder{},
	}
}

func (d *data) clone() *data {
	c := newData()
	for k, v := range d.companies {
		c.companies[k] = v
	}
	for k, v := range d.employees {
		c.employees[k] = v
	}
	for k, v := range d.customers {
		v.Addresses = append([]entity.Address(nil), v.Addresses...)
		c.customers[k] = v
	}
	for k, v := range d.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range d.products {
		c.products[k] = v
	}
	for k, v := range d.salesOrders {
		v.Items = nil
		c.salesOrders[k] = v
	}
	for k, v := range d.purchaseOrders {
		v.Items = nil
		c.purchaseOrders[k] = v
	}
	for k, v := range d.invoices {
		c.invoices[k] = v
	}
	for k, v := range d.serviceOrders {
		v.Items = append([]byte(nil), v.Items...)
		c.serviceOrders[k] = v
	}
	c.kardex = append([]entity.KardexEntry(nil), d.kardex...)
	c.orderItems = append([]entity.OrderItem(nil), d.orderItems...)
	c.purchaseItems = append([]entity.PurchaseOrderItem(nil), d.purchaseItems...)
	return c
}

// Store almacén en memoria. El valor cero no es utilizable; usar New.
type Store struct {
	mu   sync.Mutex // protege d
	txMu sync.Mutex // serializa transacciones (equivalente al bloqueo de filas)
	d    *data
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{d: newData()}
}

// Run ejecuta fn sobre una copia del estado; si fn devuelve nil la copia reemplaza al estado.
func (s *Store) Run(ctx context.Context, fn func(store repository.Store) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	work := s.d.clone()
	s.mu.Unlock()

	if err := fn(&view{tx: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.mu.Lock()
	s.d = work
	s.mu.Unlock()
	return nil
}

func (s *Store) root() *view { return &view{root: s} }

func (s *Store) Products() repository.ProductRepository             { return s.root().Products() }
func (s *Store) Kardex() repository.KardexRepository                { return s.root().Kardex() }
func (s *Store) SalesOrders() repository.SalesOrderRepository       { return s.root().SalesOrders() }
func (s *Store) PurchaseOrders() repository.PurchaseOrderRepository { return s.root().PurchaseOrders() }
func (s *Store) Invoices() repository.InvoiceRepository             { return s.root().Invoices() }
func (s *Store) Customers() repository.CustomerRepository           { return s.root().Customers() }
func (s *Store) Suppliers() repository.SupplierRepository           { return s.root().Suppliers() }
func (s *Store) Employees() repository.EmployeeRepository           { return s.root().Employees() }
func (s *Store) Companies() repository.CompanyRepository            { return s.root().Companies() }
func (s *Store) ServiceOrders() repository.ServiceOrderRepository   { return s.root().ServiceOrders() }

// view acceso al estado: dentro de una transacción (tx) o directo sobre el Store (root).
type view struct {
	tx   *data
	root *Store
}

func (v *view) with(fn func(d *data) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.root.mu.Lock()
	defer v.root.mu.Unlock()
	return fn(v.root.d)
}

func (v *view) Products() repository.ProductRepository             { return &productRepo{v} }
func (v *view) Kardex() repository.KardexRepository                { return &kardexRepo{v} }
func (v *view) SalesOrders() repository.SalesOrderRepository       { return &salesOrderRepo{v} }
func (v *view) PurchaseOrders() repository.PurchaseOrderRepository { return &purchaseOrderRepo{v} }
func (v *view) Invoices() repository.InvoiceRepository             { return &invoiceRepo{v} }
func (v *view) Customers() repository.CustomerRepository           { return &customerRepo{v} }
func (v *view) Suppliers() repository.SupplierRepository           { return &supplierRepo{v} }
func (v *view) Employees() repository.EmployeeRepository           { return &employeeRepo{v} }
func (v *view) Companies() repository.CompanyRepository            { return &companyRepo{v} }
func (v *view) ServiceOrders() repository.ServiceOrderRepository   { return &serviceOrderRepo{v} }

// page aplica limit/offset a una lista ya ordenada.
func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end]
}
