package dto

import "github.com/shopspring/decimal"

// OrderItemRequest línea de pedido en la petición de creación.
type OrderItemRequest struct {
	StockID  string          `json:"stock_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CreateOrderRequest petición de creación de pedido.
type CreateOrderRequest struct {
	Customer string             `json:"customer"`
	Actor    string             `json:"actor"`
	Items    []OrderItemRequest `json:"items"`
}

// TransitionOrderRequest petición de cambio de estado de un pedido.
type TransitionOrderRequest struct {
	Status string `json:"status"`
	Actor  string `json:"actor"`
}
