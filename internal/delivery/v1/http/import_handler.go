package http

import (
	"net/http"
	"strings"

	"github.com/DRSN-tech/resale-backend/internal/usecase"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
)

type ImportHandler struct {
	importUsecase usecase.ImportUC
	logger        logger.Logger
}

func NewImportHandler(importUsecase usecase.ImportUC, logger logger.Logger) *ImportHandler {
	return &ImportHandler{importUsecase: importUsecase, logger: logger}
}

// importVinted
//
//	@Summary		Импорт объявлений профиля Vinted
//	@Description	Перебирает стратегии получения объявлений. dryRun возвращает объявления без сохранения.
//	@Tags			import
//	@Accept			json
//	@Produce		json
//	@Param			body	body		importRequest	true	"Профиль"
//	@Success		200		{object}	ImportResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse	"Площадка блокирует автоматический импорт"
//	@Failure		502		{object}	ErrorResponse	"Площадка недоступна"
//	@Router			/api/import-vinted [post]
func (h *ImportHandler) importVinted(w http.ResponseWriter, r *http.Request) {
	var body importRequest
	if err := decodeJSON(w, r, &body); err != nil {
		h.fail(w, err)
		return
	}

	body.ProfileURL = strings.TrimSpace(body.ProfileURL)
	if err := validateStruct(&body); err != nil {
		h.fail(w, err)
		return
	}

	res, err := h.importUsecase.ImportProfile(r.Context(), &usecase.ImportReq{ProfileURL: body.ProfileURL, DryRun: body.DryRun})
	if err != nil {
		h.fail(w, err)
		return
	}

	h.logger.Infof("vinted import finished. imported: %d, listings: %d, cached: %t", res.ImportedCount, len(res.Listings), res.FromCache)
	WriteSuccess(w, http.StatusOK, toImportResponse(res))
}

func (h *ImportHandler) fail(w http.ResponseWriter, err error) {
	logError(h.logger, err)
	WriteError(w, err)
}
