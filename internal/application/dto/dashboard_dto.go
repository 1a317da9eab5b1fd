package dto

import "github.com/shopspring/decimal"

// RecomputeRequest comando de recálculo de un contador del dashboard.
type RecomputeRequest struct {
	Type   string `json:"type"`
	Period string `json:"period"`
}

// StatDTO contador derivado en respuestas del dashboard.
type StatDTO struct {
	StatsID   string           `json:"stats_id"`
	Type      string           `json:"type"`
	Period    string           `json:"period"`
	Value     decimal.Decimal  `json:"value"`
	Change    decimal.Decimal  `json:"change"`
	Target    *decimal.Decimal `json:"target,omitempty"`
	UpdatedAt int64            `json:"updated_at"`
}
