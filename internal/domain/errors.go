package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrNotEditable          = errors.New("la orden no puede ser editada en su estado actual")
	ErrInvalidTransition    = errors.New("transición de estado no permitida")
	ErrAlreadyCancelled     = errors.New("la orden ya está cancelada")
	ErrEmptyOrder           = errors.New("la orden no tiene ítems")
	ErrSupplierNotFound     = errors.New("proveedor no encontrado")
	ErrProductNotFound      = errors.New("producto no encontrado")
	ErrDuplicateOrderNumber = errors.New("número de orden ya existe")
	ErrNoItemsFound         = errors.New("la orden de compra no tiene ítems")
)

// ValidationError agrupa los campos faltantes o inválidos de una petición.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un ValidationError con los campos indicados.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// InsufficientStockError indica que una salida dejaría el stock en negativo.
type InsufficientStockError struct {
	ProductID string
	Current   int
	Requested int
	Shortage  int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el producto %s: actual %d, solicitado %d, faltan %d",
		e.ProductID, e.Current, e.Requested, e.Shortage)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ProductNotFoundError lista los productos que no pertenecen a la empresa.
type ProductNotFoundError struct {
	IDs []string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrProductNotFound.Error(), strings.Join(e.IDs, ", "))
}

func (e *ProductNotFoundError) Unwrap() error { return ErrProductNotFound }
