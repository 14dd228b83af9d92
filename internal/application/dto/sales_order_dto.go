package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de una orden de venta.
type OrderItemRequest struct {
	ProductID string          `json:"productId" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gt=0,lte=1000000000"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Location  string          `json:"location"`
}

// CreateSalesOrderRequest body para POST /orders/create.
type CreateSalesOrderRequest struct {
	OrderNumber       string             `json:"orderNumber" validate:"required"`
	CustomerID        string             `json:"customerId" validate:"required"`
	ShippingAddressID *string            `json:"shippingAddressId"`
	BillingAddressID  *string            `json:"billingAddressId"`
	TotalAmount       *decimal.Decimal   `json:"totalAmount" validate:"required"`
	Currency          string             `json:"currency" validate:"required"`
	OrderDate         string             `json:"orderDate" validate:"required,isodate"`
	Salesperson       string             `json:"salesperson" validate:"required"`
	Notes             string             `json:"notes"`
	OrderItems        []OrderItemRequest `json:"orderItems" validate:"required,min=1,dive"`
}

// UpdateSalesOrderRequest reemplaza cabecera e ítems; mismas reglas que la creación.
type UpdateSalesOrderRequest = CreateSalesOrderRequest

// UpdateOrderStatusRequest body para PUT /orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderItemResponse línea con datos del producto.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductCode string          `json:"productCode"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Location    string          `json:"location"`
}

// AddressResponse dirección de cliente.
type AddressResponse struct {
	ID       string `json:"id"`
	Street   string `json:"street"`
	Number   string `json:"number"`
	District string `json:"district"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
}

// OrderCustomerResponse cliente embebido en la orden.
type OrderCustomerResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Document string `json:"document"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// SalesOrderResponse proyección completa de una orden de venta.
type SalesOrderResponse struct {
	ID              string                 `json:"id"`
	OrderNumber     string                 `json:"orderNumber"`
	Status          string                 `json:"status"`
	Customer        *OrderCustomerResponse `json:"customer"`
	ShippingAddress *AddressResponse       `json:"shippingAddress"`
	BillingAddress  *AddressResponse       `json:"billingAddress"`
	TotalAmount     decimal.Decimal        `json:"totalAmount"`
	Currency        string                 `json:"currency"`
	OrderDate       time.Time              `json:"orderDate"`
	Salesperson     string                 `json:"salesperson"`
	Notes           string                 `json:"notes"`
	Items           []OrderItemResponse    `json:"orderItems"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// SalesOrderListResponse lista paginada de órdenes.
type SalesOrderListResponse struct {
	Items []SalesOrderResponse `json:"orders"`
	Page  PageResponse         `json:"pagination"`
}

// LastOrderNumberResponse último número de orden de la empresa.
type LastOrderNumberResponse struct {
	LastOrderNumber string `json:"lastOrderNumber"`
}
