package repository

import (
	"context"

	"github.com/ostramar/ostramar-api/internal/domain/entity"
)

// StatsRepository acceso a la tabla de contadores derivados del dashboard.
type StatsRepository interface {
	// Get devuelve el contador por clave derivada, o (nil, nil) si no existe.
	Get(ctx context.Context, statsID string) (*entity.DashboardStat, error)
	List(ctx context.Context) ([]entity.DashboardStat, error)
	// Upsert inserta o sobreescribe el contador (a lo sumo un registro por clave).
	Upsert(ctx context.Context, stat *entity.DashboardStat) error
}
