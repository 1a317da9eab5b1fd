package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/ostramar/ostramar-api/internal/domain/entity"
	"github.com/ostramar/ostramar-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo implementación de StatsRepository sobre PostgreSQL.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador. Pasar pool o conexión (Querier).
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// Get obtiene el contador por clave derivada, o (nil, nil) si no existe.
func (r *StatsRepo) Get(ctx context.Context, statsID string) (*entity.DashboardStat, error) {
	query := `
		SELECT stats_id, type, period, value, change, target, updated_at
		FROM dashboard_stats WHERE stats_id = $1`
	var s entity.DashboardStat
	err := r.q.QueryRow(ctx, query, statsID).Scan(
		&s.StatsID, &s.Type, &s.Period, &s.Value, &s.Change, &s.Target, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get stat", err)
	}
	return &s, nil
}

// List devuelve todos los contadores.
func (r *StatsRepo) List(ctx context.Context) ([]entity.DashboardStat, error) {
	query := `
		SELECT stats_id, type, period, value, change, target, updated_at
		FROM dashboard_stats ORDER BY stats_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, storeErr("list stats", err)
	}
	defer rows.Close()

	var out []entity.DashboardStat
	for rows.Next() {
		var s entity.DashboardStat
		if err := rows.Scan(&s.StatsID, &s.Type, &s.Period, &s.Value, &s.Change, &s.Target, &s.UpdatedAt); err != nil {
			return nil, storeErr("scan stat", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list stats", err)
	}
	return out, nil
}

// Upsert inserta o sobreescribe el contador (a lo sumo un registro por clave).
func (r *StatsRepo) Upsert(ctx context.Context, stat *entity.DashboardStat) error {
	query := `
		INSERT INTO dashboard_stats (stats_id, type, period, value, change, target, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (stats_id)
		DO UPDATE SET value = EXCLUDED.value, change = EXCLUDED.change,
		              target = EXCLUDED.target, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		stat.StatsID, stat.Type, stat.Period, stat.Value, stat.Change, stat.Target, stat.UpdatedAt,
	)
	if err != nil {
		return storeErr("upsert stat", err)
	}
	return nil
}
