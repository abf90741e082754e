package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/pkg/e"
)

// StatsUseCase собирает метрики дашборда.
type StatsUseCase struct {
	statsRepo StatsRepository
	loc       *time.Location
	now       func() time.Time
}

func NewStatsUC(statsRepo StatsRepository, loc *time.Location) *StatsUseCase {
	if loc == nil {
		loc = time.Local
	}

	return &StatsUseCase{
		statsRepo: statsRepo,
		loc:       loc,
		now:       time.Now,
	}
}

// DashboardStats считает метрики одним запросом к хранилищу. Начало месяца берётся в часовом поясе сервиса.
func (s *StatsUseCase) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	const op = "StatsUseCase.DashboardStats"

	monthStart := domain.StartOfMonth(s.now(), s.loc)

	agg, err := s.statsRepo.Aggregate(ctx, monthStart)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	stats := domain.NewDashboardStats(*agg)
	return &stats, nil
}
