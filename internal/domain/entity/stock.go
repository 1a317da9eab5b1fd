package entity

// Estados de un ítem de stock.
const (
	StockStatusAvailable   = "available"
	StockStatusInUse       = "in_use"
	StockStatusMaintenance = "maintenance"
	StockStatusOutOfStock  = "out_of_stock"
)

// GeoPoint ubicación geográfica de un recurso (balsa, mesa de cultivo, bodega).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Stock representa un ítem de inventario físico (ostras por calibre, insumos, equipo).
// Invariante: Quantity nunca negativa; solo el servicio de reservas o un ajuste
// administrativo la mutan.
type Stock struct {
	ID          string
	Name        string
	Type        string
	Status      string
	Quantity    int
	Location    GeoPoint
	LastUpdated int64 // epoch milisegundos
}

// ValidStockStatus indica si s es un estado de stock reconocido.
func ValidStockStatus(s string) bool {
	switch s {
	case StockStatusAvailable, StockStatusInUse, StockStatusMaintenance, StockStatusOutOfStock:
		return true
	}
	return false
}
