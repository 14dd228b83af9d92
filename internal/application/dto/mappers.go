package dto

import "github.com/jhoicas/erp-kardex/internal/domain/entity"

// FromProduct convierte la entidad a su respuesta HTTP.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		CompanyID:    p.CompanyID,
		Code:         p.Code,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Cost:         p.Cost,
		Stock:        p.Stock,
		MinimumStock: p.MinimumStock,
		Unit:         p.Unit,
		Barcode:      p.Barcode,
		Brand:        p.Brand,
		FiscalCode:   p.FiscalCode,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// FromKardexEntry convierte un registro del Kardex.
func FromKardexEntry(e *entity.KardexEntry) KardexEntryResponse {
	return KardexEntryResponse{
		ID:           e.ID,
		ProductID:    e.ProductID,
		ProductCode:  e.ProductCode,
		ProductName:  e.ProductName,
		OrderID:      e.OrderID,
		OrderNumber:  e.OrderNumber,
		MovementType: string(e.MovementType),
		Quantity:     e.Quantity,
		UnitPrice:    e.UnitPrice,
		StockBefore:  e.StockBefore,
		StockAfter:   e.StockAfter,
		MovementDate: e.MovementDate,
		Notes:        e.Notes,
	}
}

// FromKardexEntries convierte una lista (nunca devuelve nil).
func FromKardexEntries(entries []*entity.KardexEntry) []KardexEntryResponse {
	out := make([]KardexEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromKardexEntry(e))
	}
	return out
}

// FromAddress convierte una dirección; nil si a es nil.
func FromAddress(a *entity.Address) *AddressResponse {
	if a == nil {
		return nil
	}
	return &AddressResponse{
		ID:       a.ID,
		Street:   a.Street,
		Number:   a.Number,
		District: a.District,
		City:     a.City,
		State:    a.State,
		ZipCode:  a.ZipCode,
	}
}

// FromCustomer convierte un cliente con sus direcciones.
func FromCustomer(c *entity.Customer) CustomerResponse {
	addrs := make([]AddressResponse, 0, len(c.Addresses))
	for i := range c.Addresses {
		addrs = append(addrs, *FromAddress(&c.Addresses[i]))
	}
	return CustomerResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Document:  c.Document,
		Email:     c.Email,
		Phone:     c.Phone,
		Addresses: addrs,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromEmployee convierte un empleado (sin password).
func FromEmployee(e *entity.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		CompanyID: e.CompanyID,
		Name:      e.Name,
		Username:  e.Username,
		Email:     e.Email,
		Role:      e.Role,
		Status:    e.Status,
		Active:    e.Active,
		Access:    e.Access,
		Sector:    e.Sector,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// FromCompany convierte una empresa.
func FromCompany(c *entity.Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Logo:      c.Logo,
		Icon:      c.Icon,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromInvoice convierte una factura.
func FromInvoice(inv *entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:              inv.ID,
		PurchaseOrderID: inv.PurchaseOrderID,
		InvoiceNumber:   inv.InvoiceNumber,
		IssueDate:       inv.IssueDate,
		TotalValue:      inv.TotalValue,
		Status:          inv.Status,
		Notes:           inv.Notes,
		CreatedAt:       inv.CreatedAt,
	}
}

// FromPurchaseOrder convierte una orden de compra con ítems.
func FromPurchaseOrder(o *entity.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, PurchaseOrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductCode: it.ProductCode,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitCost:    it.UnitCost,
		})
	}
	return PurchaseOrderResponse{
		ID:                   o.ID,
		OrderNumber:          o.OrderNumber,
		Status:               string(o.Status),
		SupplierID:           o.SupplierID,
		SupplierName:         o.SupplierName,
		TotalCost:            o.TotalCost,
		Currency:             o.Currency,
		OrderDate:            o.OrderDate,
		ExpectedDeliveryDate: o.ExpectedDeliveryDate,
		Buyer:                o.Buyer,
		Notes:                o.Notes,
		Items:                items,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}

// FromSalesOrderDetail arma la proyección completa de una orden de venta.
func FromSalesOrderDetail(d *entity.SalesOrderDetail) SalesOrderResponse {
	o := d.Order
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductCode: it.ProductCode,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Location:    it.Location,
		})
	}
	var customer *OrderCustomerResponse
	if d.Customer != nil {
		customer = &OrderCustomerResponse{
			ID:       d.Customer.ID,
			Name:     d.Customer.Name,
			Document: d.Customer.Document,
			Email:    d.Customer.Email,
			Phone:    d.Customer.Phone,
		}
	}
	return SalesOrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		Status:          string(o.Status),
		Customer:        customer,
		ShippingAddress: FromAddress(d.ShippingAddress),
		BillingAddress:  FromAddress(d.BillingAddress),
		TotalAmount:     o.TotalAmount,
		Currency:        o.Currency,
		OrderDate:       o.OrderDate,
		Salesperson:     o.Salesperson,
		Notes:           o.Notes,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// FromSupplier convierte un proveedor.
func FromSupplier(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:                   s.ID,
		CompanyID:            s.CompanyID,
		Name:                 s.Name,
		Code:                 s.Code,
		TradingName:          s.TradingName,
		Email:                s.Email,
		Phone:                s.Phone,
		NationalRegisterCode: s.NationalRegisterCode,
		Active:               s.Active,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

// FromServiceOrder convierte una orden de servicio.
func FromServiceOrder(o *entity.ServiceOrder) ServiceOrderResponse {
	return ServiceOrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Status:      string(o.Status),
		CustomerID:  o.CustomerID,
		Items:       o.Items,
		Notes:       o.Notes,
		Message:     o.Message,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// ToLowStockItem convierte un producto bajo mínimo.
func ToLowStockItem(p *entity.Product) LowStockItem {
	return LowStockItem{
		ProductID:    p.ID,
		CompanyID:    p.CompanyID,
		Code:         p.Code,
		Name:         p.Name,
		Stock:        p.Stock,
		MinimumStock: p.MinimumStock,
		Missing:      p.MinimumStock - p.Stock,
	}
}
