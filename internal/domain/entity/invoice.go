package entity

import "github.com/shopspring/decimal"

// Estados de una factura.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// InvoiceItem línea de factura.
type InvoiceItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Invoice representa una factura de venta. Referencia opcionalmente un pedido
// (OrderID) sin cascada: borrar o cancelar el pedido no toca la factura.
type Invoice struct {
	ID            string
	InvoiceNumber string
	OrderID       string
	Items         []InvoiceItem
	TotalAmount   decimal.Decimal
	Tax           decimal.Decimal
	Status        string
	History       []HistoryEntry
	CreatedAt     int64 // epoch milisegundos
	UpdatedAt     int64
}

// ValidInvoiceStatus indica si s es un estado de factura reconocido.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}
