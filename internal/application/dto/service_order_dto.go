package dto

import (
	"encoding/json"
	"time"
)

// CreateServiceOrderRequest body para POST /serviceOrders/create.
type CreateServiceOrderRequest struct {
	OrderNumber string          `json:"orderNumber" validate:"required"`
	Status      string          `json:"status" validate:"omitempty,oneof=initialized in_progress canceled finish"`
	CustomerID  *string         `json:"customerId"`
	Items       json.RawMessage `json:"items"`
	Notes       string          `json:"notes"`
	Message     string          `json:"message"`
}

// UpdateServiceOrderRequest actualización parcial; Status pasa por la tabla de transiciones.
type UpdateServiceOrderRequest struct {
	Status  *string         `json:"status" validate:"omitempty,oneof=initialized in_progress canceled finish"`
	Items   json.RawMessage `json:"items"`
	Notes   *string         `json:"notes"`
	Message *string         `json:"message"`
}

// ServiceOrderResponse salida de una orden de servicio.
type ServiceOrderResponse struct {
	ID          string          `json:"id"`
	OrderNumber string          `json:"orderNumber"`
	Status      string          `json:"status"`
	CustomerID  *string         `json:"customerId"`
	Items       json.RawMessage `json:"items"`
	Notes       string          `json:"notes"`
	Message     string          `json:"message"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ServiceOrderListResponse lista paginada de órdenes de servicio.
type ServiceOrderListResponse struct {
	Items []ServiceOrderResponse `json:"items"`
	Page  PageResponse           `json:"pagination"`
}
