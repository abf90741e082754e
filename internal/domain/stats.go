package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// StatsAggregate: сырые агрегаты по таблице артикулов за один проход.
type StatsAggregate struct {
	TotalArticles      int64
	TotalSold          int64
	MonthlySold        int64
	MonthlyRevenue     decimal.Decimal
	MonthlyCost        decimal.Decimal
	TotalRevenue       decimal.Decimal
	TotalCost          decimal.Decimal
	AverageCoefficient decimal.Decimal // среднее price/purchase_price по проданным, без нулевых закупок
}

// DashboardStats: снимок метрик для дашборда. Денежные поля в виде строк с 2 знаками, процент с 1 знаком.
type DashboardStats struct {
	TotalArticles        int64
	MonthlyItemsSold     int64
	MonthlyRevenue       string
	MonthlyMargin        string
	TotalItemsSold       int64
	TotalRevenue         string
	TotalMargin          string
	AverageCoefficient   string
	AverageMarginPercent string
}

// NewDashboardStats выводит маржи и проценты из агрегатов и форматирует результат.
func NewDashboardStats(a StatsAggregate) DashboardStats {
	monthlyMargin := a.MonthlyRevenue.Sub(a.MonthlyCost)
	totalMargin := a.TotalRevenue.Sub(a.TotalCost)

	marginPercent := decimal.Zero
	if !a.TotalRevenue.IsZero() {
		marginPercent = totalMargin.Div(a.TotalRevenue).Mul(hundred)
	}

	return DashboardStats{
		TotalArticles:        a.TotalArticles,
		MonthlyItemsSold:     a.MonthlySold,
		MonthlyRevenue:       a.MonthlyRevenue.StringFixed(2),
		MonthlyMargin:        monthlyMargin.StringFixed(2),
		TotalItemsSold:       a.TotalSold,
		TotalRevenue:         a.TotalRevenue.StringFixed(2),
		TotalMargin:          totalMargin.StringFixed(2),
		AverageCoefficient:   a.AverageCoefficient.StringFixed(2),
		AverageMarginPercent: marginPercent.StringFixed(1),
	}
}

// StartOfMonth возвращает первый момент календарного месяца, в котором находится now, в часовом поясе loc.
func StartOfMonth(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}

	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
}
