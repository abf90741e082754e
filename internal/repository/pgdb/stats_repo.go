package pgdb

import (
	"context"
	"time"

	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// StatsRepo считает агрегаты дашборда одним запросом.
type StatsRepo struct {
	pool *pgxpool.Pool
	conv converter.StatsConverter
}

func NewStatsRepo(pool *pgxpool.Pool, conv converter.StatsConverter) *StatsRepo {
	return &StatsRepo{pool: pool, conv: conv}
}

// Aggregate возвращает счётчики и суммы по артикулам. Проданные в текущем месяце
// определяются по updated_at >= monthStart.
func (s *StatsRepo) Aggregate(ctx context.Context, monthStart time.Time) (*domain.StatsAggregate, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'sold'),
			COUNT(*) FILTER (WHERE status = 'sold' AND updated_at >= $1),
			COALESCE(SUM(price)          FILTER (WHERE status = 'sold' AND updated_at >= $1), 0)::text,
			COALESCE(SUM(purchase_price) FILTER (WHERE status = 'sold' AND updated_at >= $1), 0)::text,
			COALESCE(SUM(price)          FILTER (WHERE status = 'sold'), 0)::text,
			COALESCE(SUM(purchase_price) FILTER (WHERE status = 'sold'), 0)::text,
			COALESCE(AVG(price / NULLIF(purchase_price, 0)) FILTER (WHERE status = 'sold'), 0)::text
		FROM articles
	`

	var m converter.StatsModel
	err := s.pool.QueryRow(ctx, query, monthStart).Scan(
		&m.TotalArticles,
		&m.TotalSold,
		&m.MonthlySold,
		&m.MonthlyRevenue,
		&m.MonthlyCost,
		&m.TotalRevenue,
		&m.TotalCost,
		&m.AverageCoefficient,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	agg, err := s.conv.ToEntity(&m)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return agg, nil
}
