package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/resale-backend/internal/usecase"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
)

const defaultConversationLimit = 20

type AssistantHandler struct {
	assistantUsecase usecase.AssistantUC
	maxUploadSize    int64
	logger           logger.Logger
}

func NewAssistantHandler(assistantUsecase usecase.AssistantUC, maxUploadSize int64, logger logger.Logger) *AssistantHandler {
	return &AssistantHandler{assistantUsecase: assistantUsecase, maxUploadSize: maxUploadSize, logger: logger}
}

// generateDescription
//
//	@Summary		Генерация заголовка и описания по фото
//	@Description	Если передан articleId, результат сохраняется в артикул
//	@Tags			assistant
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			image		formData	file	true	"Фото"
//	@Param			price		formData	string	true	"Цена"
//	@Param			size		formData	string	true	"Размер"
//	@Param			brand		formData	string	true	"Марка"
//	@Param			comment		formData	string	false	"Комментарий"
//	@Param			articleId	formData	int		false	"ID артикула"
//	@Success		200			{object}	GeneratedListingResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		502			{object}	ErrorResponse	"AI недоступен, повторите попытку"
//	@Router			/api/generate-description [post]
func (h *AssistantHandler) generateDescription(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+maxMemory)
	if err := ensureMultipartForm(r); err != nil {
		h.fail(w, err)
		return
	}

	image, err := formImage(r, "image", h.maxUploadSize)
	if err != nil {
		h.fail(w, err)
		return
	}

	req := &usecase.GenerateDescriptionReq{
		Image:   image,
		Price:   strings.TrimSpace(r.FormValue("price")),
		Size:    strings.TrimSpace(r.FormValue("size")),
		Brand:   strings.TrimSpace(r.FormValue("brand")),
		Comment: strings.TrimSpace(r.FormValue("comment")),
	}

	if raw := strings.TrimSpace(r.FormValue("articleId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.fail(w, e.NewFieldError("articleId", "articleId must be a positive integer"))
			return
		}
		req.ArticleID = &id
	}

	listing, err := h.assistantUsecase.GenerateDescription(r.Context(), req)
	if err != nil {
		h.fail(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, GeneratedListingResponse{Title: listing.Title, Description: listing.Description})
}

// generateResponses
//
//	@Summary	Три варианта ответа покупателю
//	@Tags		assistant
//	@Accept		json
//	@Produce	json
//	@Param		body	body		generateResponsesRequest	true	"Сообщение покупателя"
//	@Success	200		{object}	RepliesResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	502		{object}	ErrorResponse
//	@Router		/api/generate-responses [post]
func (h *AssistantHandler) generateResponses(w http.ResponseWriter, r *http.Request) {
	var body generateResponsesRequest
	if err := decodeJSON(w, r, &body); err != nil {
		h.fail(w, err)
		return
	}

	body.CustomerMessage = strings.TrimSpace(body.CustomerMessage)
	if err := validateStruct(&body); err != nil {
		h.fail(w, err)
		return
	}

	replies, err := h.assistantUsecase.GenerateResponses(r.Context(), body.CustomerMessage)
	if err != nil {
		h.fail(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toRepliesResponse(replies))
}

// listConversations
//
//	@Summary	Последние обращения покупателей
//	@Tags		assistant
//	@Produce	json
//	@Param		limit	query	int	false	"Не больше 100"
//	@Success	200		{array}	ConversationResponse
//	@Router		/api/conversations [get]
func (h *AssistantHandler) listConversations(w http.ResponseWriter, r *http.Request) {
	limit := defaultConversationLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.fail(w, e.NewFieldError("limit", "limit must be a positive integer"))
			return
		}
		limit = n
	}

	conversations, err := h.assistantUsecase.ListConversations(r.Context(), limit)
	if err != nil {
		h.fail(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toConversationResponses(conversations))
}

func (h *AssistantHandler) fail(w http.ResponseWriter, err error) {
	logError(h.logger, err)
	WriteError(w, err)
}
