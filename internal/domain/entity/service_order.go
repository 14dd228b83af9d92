package entity

import (
	"encoding/json"
	"time"
)

// ServiceOrder orden de servicio. No interactúa con el stock.
type ServiceOrder struct {
	ID          string
	CompanyID   string
	OrderNumber string
	Status      ServiceOrderStatus
	CustomerID  *string
	Items       json.RawMessage // ítems libres definidos por el cliente
	Notes       string
	Message     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
