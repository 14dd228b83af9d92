package entity

// SalesOrderStatus estado de una orden de venta.
type SalesOrderStatus string

// Estados de la orden de venta.
const (
	SalesOrderPending    SalesOrderStatus = "pending"
	SalesOrderApproved   SalesOrderStatus = "approved"
	SalesOrderInProgress SalesOrderStatus = "in_progress"
	SalesOrderShipped    SalesOrderStatus = "shipped"
	SalesOrderDelivered  SalesOrderStatus = "delivered"
	SalesOrderCancelled  SalesOrderStatus = "cancelled"
	SalesOrderBackout    SalesOrderStatus = "backout"
)

// SalesOrderTransitions tabla de transiciones legales. Un estado sin destinos es terminal.
var SalesOrderTransitions = map[SalesOrderStatus][]SalesOrderStatus{
	SalesOrderPending:    {SalesOrderApproved, SalesOrderCancelled, SalesOrderBackout},
	SalesOrderBackout:    {SalesOrderPending, SalesOrderApproved, SalesOrderCancelled},
	SalesOrderApproved:   {SalesOrderInProgress, SalesOrderCancelled, SalesOrderBackout},
	SalesOrderInProgress: {SalesOrderShipped, SalesOrderCancelled},
	SalesOrderShipped:    {SalesOrderDelivered, SalesOrderCancelled},
	SalesOrderDelivered:  {},
	SalesOrderCancelled:  {},
}

// Valid indica si el estado existe en la tabla.
func (s SalesOrderStatus) Valid() bool {
	_, ok := SalesOrderTransitions[s]
	return ok
}

// CanTransitionTo consulta la tabla de transiciones.
func (s SalesOrderStatus) CanTransitionTo(next SalesOrderStatus) bool {
	return canTransition(SalesOrderTransitions, s, next)
}

// Editable solo pending y backout permiten modificar ítems.
func (s SalesOrderStatus) Editable() bool {
	return s == SalesOrderPending || s == SalesOrderBackout
}

// PurchaseOrderStatus estado de una orden de compra.
type PurchaseOrderStatus string

// Estados de la orden de compra.
const (
	PurchaseOrderPending    PurchaseOrderStatus = "pending"
	PurchaseOrderApproved   PurchaseOrderStatus = "approved"
	PurchaseOrderInProgress PurchaseOrderStatus = "in_progress"
	PurchaseOrderCanceled   PurchaseOrderStatus = "canceled"
	PurchaseOrderReceived   PurchaseOrderStatus = "received"
)

// PurchaseOrderTransitions received solo se alcanza al emitir la factura.
var PurchaseOrderTransitions = map[PurchaseOrderStatus][]PurchaseOrderStatus{
	PurchaseOrderPending:    {PurchaseOrderApproved, PurchaseOrderCanceled, PurchaseOrderReceived},
	PurchaseOrderApproved:   {PurchaseOrderInProgress, PurchaseOrderCanceled, PurchaseOrderReceived},
	PurchaseOrderInProgress: {PurchaseOrderReceived, PurchaseOrderCanceled},
	PurchaseOrderCanceled:   {},
	PurchaseOrderReceived:   {},
}

func (s PurchaseOrderStatus) Valid() bool {
	_, ok := PurchaseOrderTransitions[s]
	return ok
}

func (s PurchaseOrderStatus) CanTransitionTo(next PurchaseOrderStatus) bool {
	return canTransition(PurchaseOrderTransitions, s, next)
}

// ServiceOrderStatus estado de una orden de servicio.
type ServiceOrderStatus string

const (
	ServiceOrderInitialized ServiceOrderStatus = "initialized"
	ServiceOrderInProgress  ServiceOrderStatus = "in_progress"
	ServiceOrderCanceled    ServiceOrderStatus = "canceled"
	ServiceOrderFinished    ServiceOrderStatus = "finish"
)

var ServiceOrderTransitions = map[ServiceOrderStatus][]ServiceOrderStatus{
	ServiceOrderInitialized: {ServiceOrderInProgress, ServiceOrderCanceled},
	ServiceOrderInProgress:  {ServiceOrderFinished, ServiceOrderCanceled},
	ServiceOrderCanceled:    {},
	ServiceOrderFinished:    {},
}

func (s ServiceOrderStatus) Valid() bool {
	_, ok := ServiceOrderTransitions[s]
	return ok
}

func (s ServiceOrderStatus) CanTransitionTo(next ServiceOrderStatus) bool {
	return canTransition(ServiceOrderTransitions, s, next)
}

func canTransition[S comparable](table map[S][]S, from, to S) bool {
	for _, s := range table[from] {
		if s == to {
			return true
		}
	}
	return false
}
