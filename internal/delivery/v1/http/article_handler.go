package http

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/internal/usecase"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type ArticleHandler struct {
	articleUsecase usecase.ArticleUC
	maxUploadSize  int64
	logger         logger.Logger
}

func NewArticleHandler(articleUsecase usecase.ArticleUC, maxUploadSize int64, logger logger.Logger) *ArticleHandler {
	return &ArticleHandler{articleUsecase: articleUsecase, maxUploadSize: maxUploadSize, logger: logger}
}

// listArticles
//
//	@Summary	Список артикулов
//	@Tags		articles
//	@Produce	json
//	@Success	200	{array}		ArticleResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/api/articles [get]
func (h *ArticleHandler) listArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articleUsecase.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArticleResponses(articles))
}

// getArticle
//
//	@Summary	Артикул по id
//	@Tags		articles
//	@Produce	json
//	@Param		id	path		int	true	"ID артикула"
//	@Success	200	{object}	ArticleResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/articles/{id} [get]
func (h *ArticleHandler) getArticle(w http.ResponseWriter, r *http.Request) {
	id, err := articleID(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	article, err := h.articleUsecase.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArticleResponse(article))
}

// createArticle
//
//	@Summary		Создание артикула
//	@Description	Принимает multipart/form-data (с необязательным фото image) или JSON
//	@Tags			articles
//	@Accept			multipart/form-data,json
//	@Produce		json
//	@Param			name			formData	string	true	"Название"
//	@Param			brand			formData	string	true	"Марка"
//	@Param			size			formData	string	true	"Размер"
//	@Param			price			formData	string	true	"Цена продажи"
//	@Param			purchasePrice	formData	string	false	"Цена закупки"
//	@Param			status			formData	string	false	"sold, unsold или pending"
//	@Param			comment			formData	string	false	"Комментарий"
//	@Param			image			formData	file	false	"Фото"
//	@Success		201				{object}	ArticleResponse
//	@Failure		400				{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/api/articles [post]
func (h *ArticleHandler) createArticle(w http.ResponseWriter, r *http.Request) {
	var (
		body  createArticleRequest
		image *usecase.ArticleImage
	)

	if isMultipart(r) {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+maxMemory)
		if err := ensureMultipartForm(r); err != nil {
			h.fail(w, err)
			return
		}

		body = createArticleRequest{
			Name:          r.FormValue("name"),
			Brand:         r.FormValue("brand"),
			Size:          r.FormValue("size"),
			Price:         flexString(r.FormValue("price")),
			PurchasePrice: flexString(r.FormValue("purchasePrice")),
			Status:        r.FormValue("status"),
			Comment:       r.FormValue("comment"),
		}

		img, err := formImage(r, "image", h.maxUploadSize)
		if err != nil {
			h.fail(w, err)
			return
		}
		image = img
	} else if err := decodeJSON(w, r, &body); err != nil {
		h.fail(w, err)
		return
	}

	req, err := body.toUsecase()
	if err != nil {
		h.fail(w, err)
		return
	}
	req.Image = image

	article, err := h.articleUsecase.Create(r.Context(), req)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.logger.Infof("article created. id: %d", article.ID)
	WriteSuccess(w, http.StatusCreated, toArticleResponse(article))
}

func (b *createArticleRequest) toUsecase() (*usecase.CreateArticleReq, error) {
	b.Name = strings.TrimSpace(b.Name)
	b.Brand = strings.TrimSpace(b.Brand)
	b.Size = strings.TrimSpace(b.Size)
	b.Status = strings.TrimSpace(b.Status)

	verr := validateStruct(b)

	var priceErr, purchaseErr error
	req := &usecase.CreateArticleReq{
		Name:    b.Name,
		Brand:   b.Brand,
		Size:    b.Size,
		Status:  domain.ArticleStatus(b.Status),
		Comment: strings.TrimSpace(b.Comment),
	}
	if strings.TrimSpace(string(b.Price)) != "" {
		req.Price, priceErr = parseMoney("price", string(b.Price))
	}
	if strings.TrimSpace(string(b.PurchasePrice)) != "" {
		req.PurchasePrice, purchaseErr = parseMoney("purchasePrice", string(b.PurchasePrice))
	}

	if err := mergeValidation(verr, priceErr, purchaseErr); err != nil {
		return nil, err
	}

	return req, nil
}

// updateArticle
//
//	@Summary		Частичное обновление артикула
//	@Description	JSON или multipart/form-data. Отсутствующие поля не меняются.
//	@Tags			articles
//	@Accept			json,multipart/form-data
//	@Produce		json
//	@Param			id		path		int						true	"ID артикула"
//	@Param			body	body		updateArticleRequest	false	"Поля для обновления"
//	@Success		200		{object}	ArticleResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/articles/{id} [put]
//	@Router			/api/articles/{id} [patch]
func (h *ArticleHandler) updateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := articleID(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	var (
		body  updateArticleRequest
		image *usecase.ArticleImage
	)

	if isMultipart(r) {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+maxMemory)
		if err := ensureMultipartForm(r); err != nil {
			h.fail(w, err)
			return
		}

		body = updateArticleRequest{
			Name:          formValue(r, "name"),
			Brand:         formValue(r, "brand"),
			Size:          formValue(r, "size"),
			Price:         formFlex(r, "price"),
			PurchasePrice: formFlex(r, "purchasePrice"),
			Status:        formValue(r, "status"),
			Comment:       formValue(r, "comment"),
		}

		image, err = formImage(r, "image", h.maxUploadSize)
		if err != nil {
			h.fail(w, err)
			return
		}
	} else if err := decodeJSON(w, r, &body); err != nil {
		h.fail(w, err)
		return
	}

	patch, err := body.toPatch()
	if err != nil {
		h.fail(w, err)
		return
	}

	article, err := h.articleUsecase.Update(r.Context(), id, &usecase.UpdateArticleReq{Patch: *patch, Image: image})
	if err != nil {
		h.fail(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArticleResponse(article))
}

func (b *updateArticleRequest) toPatch() (*domain.ArticlePatch, error) {
	b.Name, b.Brand, b.Size, b.Status = trimPtr(b.Name), trimPtr(b.Brand), trimPtr(b.Size), trimPtr(b.Status)

	verr := validateStruct(b)

	price, priceErr := parseOptionalMoney("price", b.Price)
	purchase, purchaseErr := parseOptionalMoney("purchasePrice", b.PurchasePrice)

	if err := mergeValidation(verr, priceErr, purchaseErr); err != nil {
		return nil, err
	}

	patch := &domain.ArticlePatch{
		Name:          b.Name,
		Brand:         b.Brand,
		Size:          b.Size,
		Price:         price,
		PurchasePrice: purchase,
		Comment:       trimPtr(b.Comment),
	}
	if b.Status != nil {
		s := domain.ArticleStatus(*b.Status)
		patch.Status = &s
	}

	return patch, nil
}

// markSold
//
//	@Summary	Отметить артикул проданным
//	@Tags		articles
//	@Produce	json
//	@Param		id	path		int	true	"ID артикула"
//	@Success	200	{object}	ArticleResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/articles/{id}/sold [post]
func (h *ArticleHandler) markSold(w http.ResponseWriter, r *http.Request) {
	id, err := articleID(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	article, err := h.articleUsecase.MarkSold(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArticleResponse(article))
}

// deleteArticle
//
//	@Summary	Удаление артикула
//	@Tags		articles
//	@Produce	json
//	@Param		id	path		int	true	"ID артикула"
//	@Success	200	{object}	MessageResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/articles/{id} [delete]
func (h *ArticleHandler) deleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := articleID(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	if err := h.articleUsecase.Delete(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, MessageResponse{Message: "article deleted"})
}

// serveImage отдаёт фото из хранилища по ключу после /uploads/.
func (h *ArticleHandler) serveImage(w http.ResponseWriter, r *http.Request) {
	obj, err := h.articleUsecase.OpenImage(r.Context(), chi.URLParam(r, "*"))
	if err != nil {
		h.fail(w, err)
		return
	}
	defer obj.Body.Close()

	w.Header().Set("Content-Type", obj.ContentType)
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, obj.Body); err != nil {
		h.logger.Warnf("image stream interrupted: %v", err)
	}
}

func (h *ArticleHandler) fail(w http.ResponseWriter, err error) {
	logError(h.logger, err)
	WriteError(w, err)
}

func articleID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, e.Wrap(chi.URLParam(r, "id"), e.ErrInvalidID)
	}

	return id, nil
}
