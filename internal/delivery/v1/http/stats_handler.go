package http

import (
	"net/http"
	"time"

	"github.com/DRSN-tech/resale-backend/internal/usecase"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
)

type StatsHandler struct {
	statsUsecase usecase.StatsUC
	logger       logger.Logger
}

func NewStatsHandler(statsUsecase usecase.StatsUC, logger logger.Logger) *StatsHandler {
	return &StatsHandler{statsUsecase: statsUsecase, logger: logger}
}

// dashboardStats
//
//	@Summary		Метрики дашборда
//	@Description	Суммы и маржа за текущий месяц и за всё время. Денежные поля с 2 знаками.
//	@Tags			stats
//	@Produce		json
//	@Success		200	{object}	DashboardStatsResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/dashboard-stats [get]
func (h *StatsHandler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsUsecase.DashboardStats(r.Context())
	if err != nil {
		logError(h.logger, err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toDashboardStatsResponse(stats))
}

// ping
//
//	@Summary	Проверка живости
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	PingResponse
//	@Router		/ping [get]
func ping(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, http.StatusOK, PingResponse{
		Status:    "alive",
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
}
