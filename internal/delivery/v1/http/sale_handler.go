package http

import (
	"net/http"

	"github.com/DRSN-tech/resale-backend/internal/usecase"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
)

type SaleHandler struct {
	saleUsecase usecase.SaleUC
	logger      logger.Logger
}

func NewSaleHandler(saleUsecase usecase.SaleUC, logger logger.Logger) *SaleHandler {
	return &SaleHandler{saleUsecase: saleUsecase, logger: logger}
}

// listSales
//
//	@Summary	Журнал продаж
//	@Tags		sales
//	@Produce	json
//	@Success	200	{array}	SaleResponse
//	@Router		/api/sales [get]
func (h *SaleHandler) listSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.saleUsecase.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toSaleResponses(sales))
}

// recordSale
//
//	@Summary		Регистрация продажи
//	@Description	Записывает продажу и переводит артикул в статус sold
//	@Tags			sales
//	@Accept			json
//	@Produce		json
//	@Param			body	body		recordSaleRequest	true	"Продажа"
//	@Success		201		{object}	SaleResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/sales [post]
func (h *SaleHandler) recordSale(w http.ResponseWriter, r *http.Request) {
	var body recordSaleRequest
	if err := decodeJSON(w, r, &body); err != nil {
		h.fail(w, err)
		return
	}

	verr := validateStruct(&body)

	var priceErr error
	req := &usecase.RecordSaleReq{ArticleID: body.ArticleID}
	if body.SalePrice != "" {
		req.SalePrice, priceErr = parseMoney("salePrice", string(body.SalePrice))
	}

	if err := mergeValidation(verr, priceErr); err != nil {
		h.fail(w, err)
		return
	}

	sale, err := h.saleUsecase.Record(r.Context(), req)
	if err != nil {
		h.fail(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toSaleResponse(sale))
}

func (h *SaleHandler) fail(w http.ResponseWriter, err error) {
	logError(h.logger, err)
	WriteError(w, err)
}
