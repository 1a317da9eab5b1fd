package entity

import "github.com/shopspring/decimal"

// OrderStatus estado del ciclo de vida de un pedido.
// Máquina de estados: pending es el inicial, cancelled es terminal y alcanzable
// desde cualquier estado no terminal; el resto de transiciones las dirige el caller.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid indica si el estado es uno de los reconocidos.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal indica si el estado no admite más transiciones.
func (s OrderStatus) Terminal() bool { return s == OrderStatusCancelled }

// CanTransitionTo valida la transición s -> next. La única regla dura es que
// cancelled es final; el orden hacia adelante lo decide el caller.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !next.Valid() {
		return false
	}
	return !s.Terminal()
}

// OrderItem línea de pedido: referencia a stock, cantidad reservada y precio unitario.
type OrderItem struct {
	StockID  string          `json:"stock_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// HistoryEntry entrada del historial de un pedido o factura (append-only).
type HistoryEntry struct {
	Action string `json:"action"`
	From   string `json:"from,omitempty"`
	To     string `json:"to"`
	By     string `json:"by"`
	At     int64  `json:"at"` // epoch milisegundos
}

// Order representa un pedido de venta.
// Invariante: para todo pedido no cancelado, cada línea tiene su cantidad
// descontada exactamente una vez del stock correspondiente. History es append-only.
type Order struct {
	ID          string
	OrderNumber string
	Customer    string
	Items       []OrderItem
	TotalAmount decimal.Decimal
	Status      OrderStatus
	History     []HistoryEntry
	CreatedAt   int64 // epoch milisegundos
	UpdatedAt   int64
}

// Total calcula la suma de cantidad x precio de las líneas.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
