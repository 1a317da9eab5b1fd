package dto

// CreateStockRequest alta de un ítem de stock (intake).
type CreateStockRequest struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Status   string  `json:"status"`
	Quantity int     `json:"quantity"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// UpdateStockRequest edición administrativa de campos descriptivos.
type UpdateStockRequest struct {
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Status string  `json:"status"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// AdjustQuantityRequest ajuste administrativo de cantidad absoluta.
type AdjustQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// StockResponse representación de un ítem de stock.
type StockResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	Quantity    int     `json:"quantity"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	LastUpdated int64   `json:"last_updated"`
}
