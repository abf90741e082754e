package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/DRSN-tech/resale-backend/internal/infrastructure"
	"github.com/DRSN-tech/resale-backend/internal/usecase"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

const (
	maxMemory   = 8 << 20
	maxJSONBody = 1 << 20
)

// numeric(10,2)
var maxMoney = decimal.RequireFromString("99999999.99")

type ErrorResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Errors  []e.FieldError `json:"errors,omitempty"`
}

func NewErrorResponse(code int, message string, fields []e.FieldError) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
		Errors:  fields,
	}
}

// ToHTTPResponse переводит ошибку в код и безопасное сообщение для клиента.
func ToHTTPResponse(err error) (int, string) {
	var maxBytes *http.MaxBytesError

	switch {
	case errors.Is(err, e.ErrValidation):
		return http.StatusBadRequest, e.ErrValidation.Error()
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrExpectedMultipart):
		return http.StatusBadRequest, e.ErrExpectedMultipart.Error()
	case errors.Is(err, e.ErrInvalidJSON):
		return http.StatusBadRequest, e.ErrInvalidJSON.Error()
	case errors.Is(err, e.ErrInvalidID):
		return http.StatusBadRequest, e.ErrInvalidID.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrPricePrecision):
		return http.StatusBadRequest, e.ErrPricePrecision.Error()
	case errors.Is(err, e.ErrImageRequired):
		return http.StatusBadRequest, e.ErrImageRequired.Error()
	case errors.Is(err, e.ErrFileTooLarge), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge, e.ErrFileTooLarge.Error()
	case errors.Is(err, e.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, e.ErrUnsupportedMediaType.Error()
	case errors.Is(err, e.ErrArticleNotFound):
		return http.StatusNotFound, e.ErrArticleNotFound.Error()
	case errors.Is(err, e.ErrImageNotFound):
		return http.StatusNotFound, e.ErrImageNotFound.Error()
	case errors.Is(err, e.ErrUpstreamUnavailable):
		return http.StatusBadGateway, e.ErrUpstreamUnavailable.Error()
	case errors.Is(err, e.ErrImportBlocked):
		return http.StatusUnprocessableEntity, e.ErrImportBlocked.Error()
	case errors.Is(err, e.ErrImportUnavailable):
		return http.StatusBadGateway, e.ErrImportUnavailable.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)

	var fields []e.FieldError
	if v, ok := e.AsValidation(err); ok {
		fields = v.Fields
	}

	WriteSuccess(w, code, NewErrorResponse(code, msg, fields))
}

func WriteSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// parseMoney разбирает десятичную строку. Допускается запятая, не больше 2 знаков после неё.
func parseMoney(field, raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if s == "" {
		return decimal.Zero, e.NewFieldError(field, field+" is required")
	}

	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() || d.GreaterThan(maxMoney) {
		return decimal.Zero, e.NewFieldError(field, e.ErrInvalidPrice.Error())
	}
	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		return decimal.Zero, e.NewFieldError(field, e.ErrPricePrecision.Error())
	}

	return d.Round(2), nil
}

// parseOptionalMoney возвращает nil для отсутствующего поля.
func parseOptionalMoney(field string, raw *flexString) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}

	d, err := parseMoney(field, string(*raw))
	if err != nil {
		return nil, err
	}

	return &d, nil
}

// mergeValidation собирает ошибки полей в одну ValidationError. Первая ошибка другого рода возвращается как есть.
func mergeValidation(errs ...error) error {
	var fields []e.FieldError
	for _, err := range errs {
		if err == nil {
			continue
		}
		v, ok := e.AsValidation(err)
		if !ok {
			return err
		}
		fields = append(fields, v.Fields...)
	}

	if len(fields) == 0 {
		return nil
	}

	return e.NewValidationError(fields...)
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func ensureMultipartForm(r *http.Request) error {
	if !isMultipart(r) {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return e.Wrap(whereami.WhereAmI(), e.ErrFileTooLarge)
		}
		return e.Wrap(whereami.WhereAmI(), e.ErrStatusBadRequest)
	}

	return nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return e.Wrap(err.Error(), e.ErrInvalidJSON)
	}

	return nil
}

// formImage читает файл поля field. Нет файла: nil без ошибки.
func formImage(r *http.Request, field string, maxSize int64) (*usecase.ArticleImage, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil, nil
	}

	data, mimeType, err := readFile(files[0], maxSize)
	if err != nil {
		return nil, err
	}
	// фото уходит и в хранилище, и в AI: принимаем только поддерживаемые форматы изображений
	if _, err := infrastructure.GetExtensionFromMIME(mimeType); err != nil {
		return nil, e.Wrap(files[0].Filename, err)
	}

	return usecase.NewArticleImage(data, mimeType, files[0].Filename), nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	if fh.Size > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, "", e.Wrap(whereami.WhereAmI(), err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return nil, "", e.Wrap(whereami.WhereAmI(), err)
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}

// formValue возвращает указатель, только если поле присутствует в форме.
func formValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}

	vals, ok := r.MultipartForm.Value[key]
	if !ok || len(vals) == 0 {
		return nil
	}

	return &vals[0]
}

func formFlex(r *http.Request, key string) *flexString {
	v := formValue(r, key)
	if v == nil {
		return nil
	}

	f := flexString(*v)
	return &f
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}

	t := strings.TrimSpace(*s)
	return &t
}

// logError пишет 5xx как ошибку с полной цепочкой, остальное как предупреждение.
func logError(log logger.Logger, err error) {
	code, _ := ToHTTPResponse(err)
	if code >= http.StatusInternalServerError {
		log.Errorf(err, "request failed with %d", code)
		return
	}

	log.Warnf("%d %s", code, err.Error())
}
