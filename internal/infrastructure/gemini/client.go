package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DRSN-tech/resale-backend/internal/cfg"
	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/internal/infrastructure/metrics"
	"github.com/DRSN-tech/resale-backend/internal/usecase"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	defaultTitle       = "Generated title"
	defaultDescription = "Generated description"
	defaultImageMIME   = "image/jpeg"

	opListing = "generate_listing"
	opReplies = "generate_replies"
)

// Ответы на случай, если модель вернула меньше трёх вариантов.
var cannedReplies = map[domain.ReplyTone]string{
	domain.ToneWarm:    "Bonjour ! Merci beaucoup pour votre message 😊 Je reviens vers vous très vite.",
	domain.TonePrecise: "Bonjour, merci pour votre message. Je vous réponds rapidement avec les détails.",
	domain.ToneBrief:   "Salut ! 👋",
}

var errEmptyResponse = errors.New("empty response from model")

// contentModel: часть genai.GenerativeModel, которой пользуется клиент.
type contentModel interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Client генерирует тексты объявлений и ответы покупателям через Gemini.
type Client struct {
	client  *genai.Client
	listing contentModel
	replies contentModel
	timeout time.Duration
	logger  logger.Logger
}

var _ usecase.ContentGenerator = (*Client)(nil)

func NewClient(ctx context.Context, cfg *cfg.GeminiCfg, logger logger.Logger) (*Client, error) {
	const op = "gemini.NewClient"

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	listing := client.GenerativeModel(cfg.DescriptionModel)
	listing.ResponseMIMEType = "application/json"
	listing.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":       {Type: genai.TypeString},
			"description": {Type: genai.TypeString},
		},
		Required: []string{"title", "description"},
	}

	replies := client.GenerativeModel(cfg.ReplyModel)
	replies.ResponseMIMEType = "application/json"
	replies.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"responses": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"responses"},
	}

	return &Client{
		client:  client,
		listing: listing,
		replies: replies,
		timeout: cfg.RequestTimeout,
		logger:  logger,
	}, nil
}

func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}

	return c.client.Close()
}

type listingResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GenerateListing анализирует фото и параметры артикула и возвращает заголовок и описание.
func (c *Client) GenerateListing(ctx context.Context, prompt *usecase.ListingPrompt) (*domain.GeneratedListing, error) {
	const op = "gemini.Client.GenerateListing"

	mime := prompt.MimeType
	if mime == "" {
		mime = defaultImageMIME
	}

	var out listingResponse
	err := c.generate(ctx, c.listing, &out,
		genai.Blob{MIMEType: mime, Data: prompt.Image},
		genai.Text(listingPrompt(prompt)),
	)
	metrics.ObserveAI(opListing, err)
	if err != nil {
		c.logger.Errorf(err, "listing generation failed")
		return nil, e.Wrap(op, err)
	}

	res := &domain.GeneratedListing{
		Title:       strings.TrimSpace(out.Title),
		Description: strings.TrimSpace(out.Description),
	}
	if res.Title == "" {
		res.Title = defaultTitle
	}
	if res.Description == "" {
		res.Description = defaultDescription
	}

	return res, nil
}

type repliesResponse struct {
	Responses []string `json:"responses"`
}

// GenerateReplies всегда возвращает ровно три ответа в порядке domain.ReplyTones.
func (c *Client) GenerateReplies(ctx context.Context, customerMessage string) ([]domain.CustomerReply, error) {
	const op = "gemini.Client.GenerateReplies"

	var out repliesResponse
	err := c.generate(ctx, c.replies, &out, genai.Text(repliesPrompt(customerMessage)))
	metrics.ObserveAI(opReplies, err)
	if err != nil {
		c.logger.Errorf(err, "reply generation failed")
		return nil, e.Wrap(op, err)
	}

	if len(out.Responses) != len(domain.ReplyTones) {
		c.logger.Warnf("model returned %d replies instead of %d", len(out.Responses), len(domain.ReplyTones))
	}

	return toReplies(out.Responses), nil
}

// generate выполняет запрос и декодирует JSON-ответ в dst.
// Любая ошибка оборачивается в e.ErrUpstreamUnavailable.
func (c *Client) generate(ctx context.Context, model contentModel, dst any, parts ...genai.Part) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return upstream(err)
	}

	text, err := responseText(resp)
	if err != nil {
		return upstream(err)
	}

	if err := json.Unmarshal([]byte(text), dst); err != nil {
		return upstream(fmt.Errorf("decode model response: %w", err))
	}

	return nil
}

func upstream(err error) error {
	return fmt.Errorf("%w: %w", e.ErrUpstreamUnavailable, err)
}

// responseText склеивает текстовые части первого кандидата.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", errEmptyResponse
	}

	return sb.String(), nil
}

func toReplies(texts []string) []domain.CustomerReply {
	replies := make([]domain.CustomerReply, len(domain.ReplyTones))
	for i, tone := range domain.ReplyTones {
		text := ""
		if i < len(texts) {
			text = strings.TrimSpace(texts[i])
		}
		if text == "" {
			text = cannedReplies[tone]
		}
		replies[i] = domain.CustomerReply{Tone: tone, Text: text}
	}

	return replies
}
