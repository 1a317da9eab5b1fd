package entity

import "github.com/shopspring/decimal"

// Tipos de contador derivado del dashboard.
const (
	StatTypeSales     = "sales"
	StatTypeInventory = "inventory"
	StatTypeOrders    = "orders"
)

// Periodos de agregación reconocidos. Un periodo vacío o desconocido agrega
// sobre todo el histórico.
const (
	StatPeriodDaily   = "daily"
	StatPeriodWeekly  = "weekly"
	StatPeriodMonthly = "monthly"
)

// DashboardStat contador derivado del dashboard. Dato puramente calculado:
// nunca es fuente de verdad, se recalcula y sobreescribe en cada pasada del
// agregador. A lo sumo un registro por clave (type, period).
type DashboardStat struct {
	StatsID   string // clave derivada: type + "_" + period
	Type      string
	Period    string
	Value     decimal.Decimal
	Change    decimal.Decimal // variación porcentual contra el valor anterior
	Target    *decimal.Decimal
	UpdatedAt int64 // epoch milisegundos
}

// StatsKey deriva el identificador único de un contador.
func StatsKey(statType, period string) string {
	return statType + "_" + period
}
