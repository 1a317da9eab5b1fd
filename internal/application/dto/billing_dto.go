package dto

import "github.com/shopspring/decimal"

// InvoiceItemRequest línea de factura en la petición de creación.
type InvoiceItemRequest struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// CreateInvoiceRequest petición de creación de factura. OrderID es una
// referencia suelta al pedido: no hay cascada en ningún sentido.
type CreateInvoiceRequest struct {
	OrderID string               `json:"order_id"`
	Actor   string               `json:"actor"`
	TaxRate decimal.Decimal      `json:"tax_rate"` // ej. 0.19 para IVA 19%
	Items   []InvoiceItemRequest `json:"items"`
}

// UpdateInvoiceStatusRequest petición de cambio de estado de una factura.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status"`
	Actor  string `json:"actor"`
}
