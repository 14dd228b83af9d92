package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-kardex/internal/domain"
	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/patch"
)

func as[T any](v any) T {
	t, _ := v.(T)
	return t
}

// applyFields aplica cada campo del patch con su setter; un campo desconocido es error.
func applyFields(p *patch.Patch, setters map[string]func(v any)) error {
	for _, f := range p.Fields() {
		set, ok := setters[f.Name]
		if !ok {
			return fmt.Errorf("campo no soportado: %s", f.Name)
		}
		set(f.Value)
	}
	return nil
}

// ── Products ──────────────────────────────────────────────────────────────────

type productRepo struct{ v *view }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.with(func(d *data) error {
		for _, other := range d.products {
			if other.CompanyID == p.CompanyID && other.Code == p.Code {
				return domain.ErrDuplicate
			}
		}
		d.products[p.ID] = *p
		return nil
	})
}

func (r *productRepo) get(companyID, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.with(func(d *data) error {
		if p, ok := d.products[id]; ok && p.CompanyID == companyID {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *productRepo) GetByID(_ context.Context, companyID, id string) (*entity.Product, error) {
	return r.get(companyID, id)
}

func (r *productRepo) GetForUpdate(_ context.Context, companyID, id string) (*entity.Product, error) {
	return r.get(companyID, id)
}

func (r *productRepo) GetByCode(_ context.Context, companyID, code string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.with(func(d *data) error {
		for _, p := range d.products {
			if p.CompanyID == companyID && p.Code == code {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *productRepo) FindMissing(_ context.Context, companyID string, ids []string) ([]string, error) {
	var missing []string
	err := r.v.with(func(d *data) error {
		seen := map[string]bool{}
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			if p, ok := d.products[id]; !ok || p.CompanyID != companyID {
				missing = append(missing, id)
			}
		}
		return nil
	})
	return missing, err
}

func (r *productRepo) List(_ context.Context, companyID string, limit, offset int) ([]*entity.Product, int, error) {
	var all []*entity.Product
	err := r.v.with(func(d *data) error {
		for _, p := range d.products {
			if p.CompanyID == companyID {
				p := p
				all = append(all, &p)
			}
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return page(all, limit, offset), len(all), err
}

func (r *productRepo) Update(_ context.Context, companyID, id string, p *patch.Patch) (bool, error) {
	found := false
	err := r.v.with(func(d *data) error {
		cur, ok := d.products[id]
		if !ok || cur.CompanyID != companyID {
			return nil
		}
		found = true
		if err := applyFields(p, map[string]func(any){
			"code":          func(v any) { cur.Code = as[string](v) },
			"name":          func(v any) { cur.Name = as[string](v) },
			"description":   func(v any) { cur.Description = as[string](v) },
			"price":         func(v any) { cur.Price = as[decimal.Decimal](v) },
			"cost":          func(v any) { cur.Cost = as[decimal.Decimal](v) },
			"minimum_stock": func(v any) { cur.MinimumStock = as[int](v) },
			"unit":          func(v any) { cur.Unit = as[string](v) },
			"barcode":       func(v any) { cur.Barcode = as[string](v) },
			"brand":         func(v any) { cur.Brand = as[string](v) },
			"fiscal_code":   func(v any) { cur.FiscalCode = as[string](v) },
		}); err != nil {
			return err
		}
		for otherID, other := range d.products {
			if otherID != id && other.CompanyID == companyID && other.Code == cur.Code {
				return domain.ErrDuplicate
			}
		}
		cur.UpdatedAt = time.Now()
		d.products[id] = cur
		return nil
	})
	return found, err
}

func (r *productRepo) SetStock(_ context.Context, companyID, id string, stock int) error {
	return r.v.with(func(d *data) error {
		cur, ok := d.products[id]
		if !ok || cur.CompanyID != companyID {
			return fmt.Errorf("set stock: %w", domain.ErrNotFound)
		}
		if stock < 0 {
			return fmt.Errorf("set stock: products_stock_non_negative")
		}
		cur.Stock = stock
		cur.UpdatedAt = time.Now()
		d.products[id] = cur
		return nil
	})
}

func (r *productRepo) Delete(_ context.Context, companyID, id string) (bool, error) {
	found := false
	err := r.v.with(func(d *data) error {
		cur, ok := d.products[id]
		if !ok || cur.CompanyID != companyID {
			return nil
		}
		found = true
		for _, e := range d.kardex {
			if e.ProductID == id {
				return domain.ErrConflict
			}
		}
		for _, it := range d.orderItems {
			if it.ProductID == id {
				return domain.ErrConflict
			}
		}
		for _, it := range d.purchaseItems {
			if it.ProductID == id {
				return domain.ErrConflict
			}
		}
		delete(d.products, id)
		return nil
	})
	return found, err
}

func (r *productRepo) ListBelowMinimum(_ context.Context, companyID string) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.v.with(func(d *data) error {
		for _, p := range d.products {
			if (companyID == "" || p.CompanyID == companyID) && p.BelowMinimum() {
				p := p
				out = append(out, &p)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, err
}

// ── Kardex ────────────────────────────────────────────────────────────────────

type kardexRepo struct{ v *view }

func (r *kardexRepo) Create(_ context.Context, e *entity.KardexEntry) error {
	return r.v.with(func(d *data) error {
		if p, ok := d.products[e.ProductID]; !ok || p.CompanyID != e.CompanyID {
			return fmt.Errorf("insert kardex entry: %w", domain.ErrConflict)
		}
		d.kardex = append(d.kardex, *e)
		return nil
	})
}

func orderNumberOf(d *data, orderID *string) string {
	if orderID == nil {
		return ""
	}
	if o, ok := d.salesOrders[*orderID]; ok {
		return o.OrderNumber
	}
	if o, ok := d.purchaseOrders[*orderID]; ok {
		return o.OrderNumber
	}
	return ""
}

func (r *kardexRepo) list(match func(e entity.KardexEntry) bool) ([]*entity.KardexEntry, error) {
	var out []*entity.KardexEntry
	err := r.v.with(func(d *data) error {
		for _, e := range d.kardex {
			if !match(e) {
				continue
			}
			e := e
			e.OrderNumber = orderNumberOf(d, e.OrderID)
			if p, ok := d.products[e.ProductID]; ok {
				e.ProductCode, e.ProductName = p.Code, p.Name
			}
			out = append(out, &e)
		}
		return nil
	})
	return out, err
}

func (r *kardexRepo) ListByProduct(_ context.Context, companyID, productID string) ([]*entity.KardexEntry, error) {
	return r.list(func(e entity.KardexEntry) bool {
		return e.CompanyID == companyID && e.ProductID == productID
	})
}

func (r *kardexRepo) ListByOrder(_ context.Context, companyID, orderID string) ([]*entity.KardexEntry, error) {
	return r.list(func(e entity.KardexEntry) bool {
		return e.CompanyID == companyID && e.OrderID != nil && *e.OrderID == orderID
	})
}

func (r *kardexRepo) ListOrderMovements(_ context.Context, companyID, orderID string) ([]*entity.KardexEntry, error) {
	return r.list(func(e entity.KardexEntry) bool {
		return generatedBy(e, companyID, orderID)
	})
}

func generatedBy(e entity.KardexEntry, companyID, orderID string) bool {
	return e.CompanyID == companyID && e.Source == entity.SourceOrder && e.OrderID != nil && *e.OrderID == orderID
}

func (r *kardexRepo) DeleteOrderMovements(_ context.Context, companyID, orderID string) (int64, error) {
	var n int64
	err := r.v.with(func(d *data) error {
		kept := d.kardex[:0:0]
		for _, e := range d.kardex {
			if generatedBy(e, companyID, orderID) {
				n++
				continue
			}
			kept = append(kept, e)
		}
		d.kardex = kept
		return nil
	})
	return n, err
}

// ── Sales orders ──────────────────────────────────────────────────────────────

type salesOrderRepo struct{ v *view }

func (r *salesOrderRepo) Create(_ context.Context, o *entity.SalesOrder) error {
	return r.v.with(func(d *data) error {
		for _, other := range d.salesOrders {
			if other.CompanyID == o.CompanyID && other.OrderNumber == o.OrderNumber {
				return domain.ErrDuplicate
			}
		}
		if c, ok := d.customers[o.CustomerID]; !ok || c.CompanyID != o.CompanyID {
			return fmt.Errorf("insert sales order: %w", domain.ErrConflict)
		}
		h := *o
		h.Items = nil
		d.salesOrders[o.ID] = h
		return nil
	})
}

func (r *salesOrderRepo) CreateItem(_ context.Context, it *entity.OrderItem) error {
	return r.v.with(func(d *data) error {
		if _, ok := d.salesOrders[it.OrderID]; !ok {
			return fmt.Errorf("insert order item: %w", domain.ErrConflict)
		}
		if _, ok := d.products[it.ProductID]; !ok {
			return fmt.Errorf("insert order item: %w", domain.ErrConflict)
		}
		d.orderItems = append(d.orderItems, *it)
		return nil
	})
}

func salesItems(d *data, orderID string) []entity.OrderItem {
	var items []entity.OrderItem
	for _, it := range d.orderItems {
		if it.OrderID == orderID {
			if p, ok := d.products[it.ProductID]; ok {
				it.ProductCode, it.ProductName = p.Code, p.Name
			}
			items = append(items, it)
		}
	}
	return items
}

func (r *salesOrderRepo) GetByID(_ context.Context, companyID, id string) (*entity.SalesOrder, error) {
	var out *entity.SalesOrder
	err := r.v.with(func(d *data) error {
		if o, ok := d.salesOrders[id]; ok && o.CompanyID == companyID {
			o.Items = salesItems(d, id)
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *salesOrderRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.SalesOrder, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r *salesOrderRepo) List(_ context.Context, companyID string, limit, offset int) ([]*entity.SalesOrder, int, error) {
	var all []*entity.SalesOrder
	err := r.v.with(func(d *data) error {
		for id, o := range d.salesOrders {
			if o.CompanyID == companyID {
				o := o
				o.Items = salesItems(d, id)
				all = append(all, &o)
			}
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].OrderNumber > all[j].OrderNumber
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return page(all, limit, offset), len(all), err
}

func (r *salesOrderRepo) UpdateHeader(_ context.Context, o *entity.SalesOrder) error {
	return r.v.with(func(d *data) error {
		cur, ok := d.salesOrders[o.ID]
		if !ok || cur.CompanyID != o.CompanyID {
			return domain.ErrNotFound
		}
		for id, other := range d.salesOrders {
			if id != o.ID && other.CompanyID == o.CompanyID && other.OrderNumber == o.OrderNumber {
				return domain.ErrDuplicate
			}
		}
		h := *o
		h.Items = nil
		h.CreatedAt = cur.CreatedAt
		d.salesOrders[o.ID] = h
		return nil
	})
}

func (r *salesOrderRepo) UpdateStatus(_ context.Context, companyID, id string, status entity.SalesOrderStatus) error {
	return r.v.with(func(d *data) error {
		cur, ok := d.salesOrders[id]
		if !ok || cur.CompanyID != companyID {
			return domain.ErrNotFound
		}
		cur.Status = status
		cur.UpdatedAt = time.Now()
		d.salesOrders[id] = cur
		return nil
	})
}

func (r *salesOrderRepo) DeleteItems(_ context.Context, orderID string) error {
	return r.v.with(func(d *data) error {
		kept := d.orderItems[:0:0]
		for _, it := range d.orderItems {
			if it.OrderID != orderID {
				kept = append(kept, it)
			}
		}
		d.orderItems = kept
		return nil
	})
}

func (r *salesOrderRepo) Delete(_ context.Context, companyID, id string) error {
	return r.v.with(func(d *data) error {
		cur, ok := d.salesOrders[id]
		if !ok || cur.CompanyID != companyID {
			return domain.ErrNotFound
		}
		for _, it := range d.orderItems {
			if it.OrderID == id {
				return fmt.Errorf("delete sales order: %w", domain.ErrConflict)
			}
		}
		delete(d.salesOrders, id)
		return nil
	})
}

func (r *salesOrderRepo) LastOrderNumber(_ context.Context, companyID string) (string, error) {
	best := int64(-1)
	err := r.v.with(func(d *data) error {
		for _, o := range d.salesOrders {
			if o.CompanyID != companyID {
				continue
			}
			if n, err := strconv.ParseInt(o.OrderNumber, 10, 64); err == nil && n > best {
				best = n
			}
		}
		return nil
	})
	if best < 0 {
		return "", err
	}
	return strconv.FormatInt(best, 10), err
}

// ── Purchase orders ───────────────────────────────────────────────────────────

type purchaseOrderRepo struct{ v *view }

func (r *purchaseOrderRepo) Create(_ context.Context, o *entity.PurchaseOrder) error {
	return r.v.with(func(d *data) error {
		for _, other := range d.purchaseOrders {
			if other.CompanyID == o.CompanyID && other.OrderNumber == o.OrderNumber {
				return domain.ErrDuplicate
			}
		}
		h := *o
		h.Items = nil
		d.purchaseOrders[o.ID] = h
		return nil
	})
}

func (r *purchaseOrderRepo) CreateItem(_ context.Context, it *entity.PurchaseOrderItem) error {
	return r.v.with(func(d *data) error {
		if _, ok := d.purchaseOrders[it.PurchaseOrderID]; !ok {
			return fmt.Errorf("insert purchase order item: %w", domain.ErrConflict)
		}
		d.purchaseItems = append(d.purchaseItems, *it)
		return nil
	})
}

func purchaseItems(d *data, orderID string) []entity.PurchaseOrderItem {
	var items []entity.PurchaseOrderItem
	for _, it := range d.purchaseItems {
		if it.PurchaseOrderID == orderID {
			if p, ok := d.products[it.ProductID]; ok {
				it.ProductCode, it.ProductName = p.Code, p.Name
			}
			items = append(items, it)
		}
	}
	return items
}

func (r *purchaseOrderRepo) find(match func(o entity.PurchaseOrder) bool) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	err := r.v.with(func(d *data) error {
		for id, o := range d.purchaseOrders {
			if match(o) {
				o.Items = purchaseItems(d, id)
				if s, ok := d.suppliers[o.SupplierID]; ok {
					o.SupplierName = s.Name
				}
				out = &o
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *purchaseOrderRepo) GetByID(_ context.Context, companyID, id string) (*entity.PurchaseOrder, error) {
	return r.find(func(o entity.PurchaseOrder) bool { return o.ID == id && o.CompanyID == companyID })
}

func (r *purchaseOrderRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r *purchaseOrderRepo) GetByOrderNumber(_ context.Context, companyID, orderNumber string) (*entity.PurchaseOrder, error) {
	return r.find(func(o entity.PurchaseOrder) bool {
		return o.OrderNumber == orderNumber && o.CompanyID == companyID
	})
}

func (r *purchaseOrderRepo) ExistsOrderNumber(ctx context.Context, companyID, orderNumber string) (bool, error) {
	o, err := r.GetByOrderNumber(ctx, companyID, orderNumber)
	return o != nil, err
}

func (r *purchaseOrderRepo) List(_ context.Context, companyID string, limit, offset int) ([]*entity.PurchaseOrder, int, error) {
	var all []*entity.PurchaseOrder
	err := r.v.with(func(d *data) error {
		for id, o := range d.purchaseOrders {
			if o.CompanyID == companyID {
				o := o
				o.Items = purchaseItems(d, id)
				all = append(all, &o)
			}
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool { return all[i].OrderNumber > all[j].OrderNumber })
	return page(all, limit, offset), len(all), err
}

func (r *purchaseOrderRepo) Update(_ context.Context, companyID, id string, p *patch.Patch) (bool, error) {
	found := false
	err := r.v.with(func(d *data) error {
		cur, ok := d.purchaseOrders[id]
		if !ok || cur.CompanyID != companyID {
			return nil
		}
		found = true
		if err := applyFields(p, map[string]func(any){
			"status": func(v any) { cur.Status = entity.PurchaseOrderStatus(as[string](v)) },
			"notes":  func(v any) { cur.Notes = as[string](v) },
		}); err != nil {
			return err
		}
		cur.UpdatedAt = time.Now()
		d.purchaseOrders[id] = cur
		return nil
	})
	return found, err
}

func (r *purchaseOrderRepo) DeleteItems(_ context.Context, purchaseOrderID string) error {
	return r.v.with(func(d *data) error {
		kept := d.purchaseItems[:0:0]
		for _, it := range d.purchaseItems {
			if it.PurchaseOrderID != purchaseOrderID {
				kept = append(kept, it)
			}
		}
		d.purchaseItems = kept
		return nil
	})
}

func (r *purchaseOrderRepo) Delete(_ context.Context, companyID, id string) (bool, error) {
	found := false
	err := r.v.with(func(d *data) error {
		cur, ok := d.purchaseOrders[id]
		if !ok || cur.CompanyID != companyID {
			return nil
		}
		found = true
		for _, inv := range d.invoices {
			if inv.PurchaseOrderID == id {
				return domain.ErrConflict
			}
		}
		delete(d.purchaseOrders, id)
		return nil
	})
	return found, err
}

// ── Invoices ──────────────────────────────────────────────────────────────────

type invoiceRepo struct{ v *view }

func (r *invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	return r.v.with(func(d *data) error {
		for _, other := range d.invoices {
			if other.CompanyID == inv.CompanyID && other.InvoiceNumber == inv.InvoiceNumber {
				return domain.ErrDuplicate
			}
		}
		d.invoices[inv.ID] = *inv
		return nil
	})
}

func (r *invoiceRepo) GetByID(_ context.Context, companyID, id string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.v.with(func(d *data) error {
		if inv, ok := d.invoices[id]; ok && inv.CompanyID == companyID {
			out = &inv
		}
		return nil
	})
	return out, err
}

func (r *invoiceRepo) ListByPurchaseOrder(_ context.Context, companyID, purchaseOrderID string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	err := r.v.with(func(d *data) error {
		for _, inv := range d.invoices {
			if inv.CompanyID == companyID && inv.PurchaseOrderID == purchaseOrderID {
				inv := inv
				out = append(out, &inv)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].IssueDate.Before(out[j].IssueDate) })
	return out, err
}

// ── Customers ─────────────────────────────────────────────────────────────────

type customerRepo struct{ v *view }

func (r *customerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.v.with(func(d *data) error {
		cp := *c
		cp.Addresses = append([]entity.Address(nil), c.Addresses...)
		d.customers[c.ID] = cp
		return nil
	})
}

func (r *customerRepo) GetByID(_ context.Context, companyID, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.v.with(func(d *data) error {
		if c, ok := d.customers[id]; ok && c.CompanyID == companyID {
			c.Addresses = append([]entity.Address(nil), c.Addresses...)
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *customerRepo) GetAddress(_ context.Context, customerID, addressID string) (*entity.Address, error) {
	var out *entity.Address
	err := r.v.with(func(d *data) error {
		c, ok := d.customers[customerID]
		if !ok {
			return nil
		}
		for _, a := range c.Addresses {
			if a.ID == addressID {
				a := a
				out = &a
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *customerRepo) List(_ context.Context, companyID string, limit, offset int) ([]*entity.Customer, int, error) {
	var all []*entity.Customer
	err := r.v.with(func(d *data) error {
		for _, c := range d.customers {
			if c.CompanyID == companyID {
				c := c
				c.Addresses = append([]entity.Address(nil), c.Addresses...)
				all = append(all, &c)
			}
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), len(all), err
}

func (r *customerRepo) Update(_ context.Context, companyID, id string, p *patch.Patch) (bool, error) {
	found := false
	err := r.v.with(func(d *data) error {
		cur, ok := d.customers[id]
		if !ok || cur.CompanyID != companyID {
			return nil
		}
		found = true
		if err := applyFields(p, map[string]func(any){
			"name":     func(v any) { cur.Name = as[string](v) },
			"document": func(v any) { cur.Document = as[string](v) },
			"email":    func(v any) { cur.Email = as[string](v) },
			"phone":    func(v any) { cur.Phone = as[string](v) },
		}); err != nil {
			return err
		}
		cur.UpdatedAt = time.Now()
		d.customers[id] = cur
		return nil
	})
	return found, err
}

func (r *customerRepo) ReplaceAddresses(_ context.Context, customerID string, addresses []entity.Address) error {
	return r.v.with(func(d *data) error {
		cur, ok := d.customers[customerID]
		if !ok {
			return domain.ErrNotFound
		}
		for _, a := range cur.Addresses {
			for _, o := range d.salesOrders {
				if (o.ShippingAddressID != nil && *o.ShippingAddressID == a.ID) ||
					(o.BillingAddressID != nil && *o.BillingAddressID == a.ID) {
					return domain.ErrConflict
				}
			}
		}
		cur.Addresses = append([]entity.Address(nil), addresses...)
		d.customers[customerID] = cur
		return nil
	})
}

func (r *customerRepo) Delete(_ context.Context, companyID, id string) (bool, error) {
	found := false
	err := r.v.with(func(d *data) error {
		cur, ok := d.customers[id]
		if !ok || cur.CompanyID != companyID {
			return nil
		}
		found = true
		for _, o := range d.salesOrders {
			if o.CustomerID == id {
				return domain.ErrConflict
			}
		}
		delete(d.customers, id)
		return nil
	})
	return found, err
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

type supplierRepo struct{ v *view }

func (r *supplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	return r.v.with(func(d *data) error {
		for _, other := range d.suppliers {
			if other.CompanyID == s.CompanyID && other.Code == s.Code {
				return domain.ErrDuplicate
			}
		}
		d.suppliers[s.ID] = *s
		return nil
	})
}

func (r *supplierRepo) GetByID(_ context.Context, companyID, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.v.with(func(d *data) error {
		if s, ok := d.suppliers[id]; ok && s.CompanyID == companyID {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *supplierRepo) List(_ context.Context, companyID string, limit, offset int) ([]*entity.Supplier, int, error) {
	var all []*entity.Supplier
	err := r.v.with(func(d *data) error {
		for _, s := range d.suppliers {
			if s.CompanyID == companyID {
				s := s
				all = append(all, &s)
			}
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return page(all, limit, offset), len(all), err
}

func (r *supplierRepo) Update(_ context.Context, companyID, id string, p *patch.Patch) (bool, error) {
	found := false
	err := r.v.with(func(d *data) error {
		cur, ok := d.suppliers[id]
		if !ok || cur.CompanyID != companyID {
			return nil
		}
		found = true
		if err := applyFields(p, map[string]func(any){
			"name":                   func(v any) { cur.Name = as[string](v) },
			"code":                   func(v any) { cur.Code = as[string](v) },
			"trading_name":           func(v any) { cur.TradingName = as[string](v) },
			"email":                  func(v any) { cur.Email = as[string](v) },
			"phone":                  func(v any) { cur.Phone = as[string](v) },
			"national_register_code": func(v any) { cur.NationalRegisterCode = as[string](v) },
			"active":                 func(v any) { cur.Active = as[bool](v) },
		}); err != nil {
			return err
		}
		for otherID, other := range d.suppliers {
			if otherID != id && other.CompanyID == companyID && other.Code == cur.Code {
				return domain.ErrDuplicate
			}
		}
		cur.UpdatedAt = time.Now()
		d.suppliers[id] = cur
		return nil
	})
	return found, err
}

func (r *supplierRepo) Delete(_ context.Context, companyID, id string) (bool, error) {
	found := false
	err := r.v.with(func(d *data) error {
		cur, ok := d.suppliers[id]
		if !ok || cur.CompanyID != companyID {
			return nil
		}
		found = true
		for _, o := range d.purchaseOrders {
			if o.SupplierID == id {
				return domain.ErrConflict
			}
		}
		delete(d.suppliers, id)
		return nil
	})
	return found, err
}

// ── Employees ─────────────────────────────────────────────────────────────────

type employeeRepo struct{ v *view }

func (r *employeeRepo) Create(_ context.Context, e *entity.Employee) error {
	return r.v.with(func(d *data) error {
		for _, other := range d.employees {
			if other.Username == e.Username {
				return domain.ErrDuplicate
			}
		}
		d.employees[e.ID] = *e
		return nil
	})
}

func (r *employeeRepo) GetByID(_ context.Context, companyID, id string) (*entity.Employee, error) {
	var out *entity.Employee
	err := r.v.with(func(d *data) error {
		if e, ok := d.employees[id]; ok && e.CompanyID == companyID {
			out = &e
		}
		return nil
	})
	return out, err
}

func (r *employeeRepo) FindByLogin(_ context.Context, login string) (*entity.Employee, error) {
	var out *entity.Employee
	err := r.v.with(func(d *data) error {
		for _, e := range d.employees {
			if e.Username == login || (e.Email != "" && e.Email == login) {
				e := e
				out = &e
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *employeeRepo) List(_ context.Context, companyID string, limit, offset int) ([]*entity.Employee, int, error) {
	var all []*entity.Employee
	err := r.v.with(func(d *data) error {
		for _, e := range d.employees {
			if e.CompanyID == companyID {
				e := e
				all = append(all, &e)
			}
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Username < all[j].Username })
	return page(all, limit, offset), len(all), err
}

func (r *employeeRepo) Update(_ context.Context, companyID, id string, p *patch.Patch) (bool, error) {
	found := false
	err := r.v.with(func(d *data) error {
		cur, ok := d.employees[id]
		if !ok || cur.CompanyID != companyID {
			return nil
		}
		found = true
		if err := applyFields(p, map[string]func(any){
			"name":          func(v any) { cur.Name = as[string](v) },
			"email":         func(v any) { cur.Email = as[string](v) },
			"password_hash": func(v any) { cur.PasswordHash = as[string](v) },
			"role":          func(v any) { cur.Role = as[string](v) },
			"status":        func(v any) { cur.Status = as[string](v) },
			"active":        func(v any) { cur.Active = as[bool](v) },
			"access":        func(v any) { cur.Access = as[string](v) },
			"sector":        func(v any) { cur.Sector = as[string](v) },
		}); err != nil {
			return err
		}
		cur.UpdatedAt = time.Now()
		d.employees[id] = cur
		return nil
	})
	return found, err
}

func (r *employeeRepo) Delete(_ context.Context, companyID, id string) (bool, error) {
	found := false
	err := r.v.with(func(d *data) error {
		if cur, ok := d.employees[id]; ok && cur.CompanyID == companyID {
			found = true
			delete(d.employees, id)
		}
		return nil
	})
	return found, err
}

// ── Companies ─────────────────────────────────────────────────────────────────

type companyRepo struct{ v *view }

func (r *companyRepo) Create(_ context.Context, c *entity.Company) error {
	return r.v.with(func(d *data) error {
		d.companies[c.ID] = *c
		return nil
	})
}

func (r *companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	err := r.v.with(func(d *data) error {
		if c, ok := d.companies[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *companyRepo) Update(_ context.Context, id string, p *patch.Patch) (bool, error) {
	found := false
	err := r.v.with(func(d *data) error {
		cur, ok := d.companies[id]
		if !ok {
			return nil
		}
		found = true
		if err := applyFields(p, map[string]func(any){
			"name": func(v any) { cur.Name = as[string](v) },
			"logo": func(v any) { cur.Logo = as[string](v) },
			"icon": func(v any) { cur.Icon = as[string](v) },
		}); err != nil {
			return err
		}
		cur.UpdatedAt = time.Now()
		d.companies[id] = cur
		return nil
	})
	return found, err
}

// ── Service orders ────────────────────────────────────────────────────────────

type serviceOrderRepo struct{ v *view }

func (r *serviceOrderRepo) Create(_ context.Context, o *entity.ServiceOrder) error {
	return r.v.with(func(d *data) error {
		for _, other := range d.serviceOrders {
			if other.CompanyID == o.CompanyID && other.OrderNumber == o.OrderNumber {
				return domain.ErrDuplicate
			}
		}
		d.serviceOrders[o.ID] = *o
		return nil
	})
}

func (r *serviceOrderRepo) GetByID(_ context.Context, companyID, id string) (*entity.ServiceOrder, error) {
	var out *entity.ServiceOrder
	err := r.v.with(func(d *data) error {
		if o, ok := d.serviceOrders[id]; ok && o.CompanyID == companyID {
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *serviceOrderRepo) List(_ context.Context, companyID string, limit, offset int) ([]*entity.ServiceOrder, int, error) {
	var all []*entity.ServiceOrder
	err := r.v.with(func(d *data) error {
		for _, o := range d.serviceOrders {
			if o.CompanyID == companyID {
				o := o
				all = append(all, &o)
			}
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool { return all[i].OrderNumber > all[j].OrderNumber })
	return page(all, limit, offset), len(all), err
}

func (r *serviceOrderRepo) Update(_ context.Context, companyID, id string, p *patch.Patch) (bool, error) {
	found := false
	err := r.v.with(func(d *data) error {
		cur, ok := d.serviceOrders[id]
		if !ok || cur.CompanyID != companyID {
			return nil
		}
		found = true
		if err := applyFields(p, map[string]func(any){
			"status":  func(v any) { cur.Status = entity.ServiceOrderStatus(as[string](v)) },
			"items":   func(v any) { cur.Items = as[json.RawMessage](v) },
			"notes":   func(v any) { cur.Notes = as[string](v) },
			"message": func(v any) { cur.Message = as[string](v) },
		}); err != nil {
			return err
		}
		cur.UpdatedAt = time.Now()
		d.serviceOrders[id] = cur
		return nil
	})
	return found, err
}

func (r *serviceOrderRepo) Delete(_ context.Context, companyID, id string) (bool, error) {
	found := false
	err := r.v.with(func(d *data) error {
		if cur, ok := d.serviceOrders[id]; ok && cur.CompanyID == companyID {
			found = true
			delete(d.serviceOrders, id)
		}
		return nil
	})
	return found, err
}
