package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
)

const (
	defaultConversationsLimit = 20
	maxConversationsLimit     = 100
)

// AssistantUseCase генерирует тексты объявлений и ответы покупателям через AI.
type AssistantUseCase struct {
	generator        ContentGenerator
	articleRepo      ArticleRepository
	conversationRepo ConversationRepository
	logger           logger.Logger
}

func NewAssistantUC(
	generator ContentGenerator,
	articleRepo ArticleRepository,
	conversationRepo ConversationRepository,
	logger logger.Logger,
) *AssistantUseCase {
	return &AssistantUseCase{
		generator:        generator,
		articleRepo:      articleRepo,
		conversationRepo: conversationRepo,
		logger:           logger,
	}
}

// GenerateDescription генерирует заголовок и описание по фото. Если указан артикул, результат сохраняется в нём.
func (a *AssistantUseCase) GenerateDescription(ctx context.Context, req *GenerateDescriptionReq) (*domain.GeneratedListing, error) {
	const op = "AssistantUseCase.GenerateDescription"

	if err := validateDescriptionReq(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	// артикул проверяется до обращения к AI
	if req.ArticleID != nil {
		if _, err := a.articleRepo.GetByID(ctx, *req.ArticleID); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	listing, err := a.generator.GenerateListing(ctx, NewListingPrompt(req))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if req.ArticleID != nil {
		if _, err := a.articleRepo.SetGenerated(ctx, *req.ArticleID, listing); err != nil {
			a.logger.Warnf("Failed to store generated listing. article_id: %d, error: %v", *req.ArticleID, e.Wrap(op, err))
		}
	}

	return listing, nil
}

// GenerateResponses сохраняет сообщение покупателя и три варианта ответа на него.
func (a *AssistantUseCase) GenerateResponses(ctx context.Context, customerMessage string) ([]domain.CustomerReply, error) {
	const op = "AssistantUseCase.GenerateResponses"

	message := strings.TrimSpace(customerMessage)
	if message == "" {
		return nil, e.Wrap(op, e.NewFieldError("customerMessage", "customerMessage is required"))
	}

	conversation, err := a.conversationRepo.Create(ctx, domain.NewConversation(message))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	replies, err := a.generator.GenerateReplies(ctx, message)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if _, err := a.conversationRepo.UpdateResponses(ctx, conversation.ID, domain.ReplyTexts(replies)); err != nil {
		return nil, e.Wrap(op, err)
	}

	return replies, nil
}

func (a *AssistantUseCase) ListConversations(ctx context.Context, limit int) ([]*domain.Conversation, error) {
	const op = "AssistantUseCase.ListConversations"

	switch {
	case limit <= 0:
		limit = defaultConversationsLimit
	case limit > maxConversationsLimit:
		limit = maxConversationsLimit
	}

	conversations, err := a.conversationRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return conversations, nil
}

func validateDescriptionReq(req *GenerateDescriptionReq) error {
	var fields []e.FieldError

	if req.Image == nil || len(req.Image.Data) == 0 {
		fields = append(fields, e.FieldError{Field: "image", Message: e.ErrImageRequired.Error()})
	}
	if strings.TrimSpace(req.Price) == "" {
		fields = append(fields, e.FieldError{Field: "price", Message: "price is required"})
	}
	if strings.TrimSpace(req.Size) == "" {
		fields = append(fields, e.FieldError{Field: "size", Message: "size is required"})
	}
	if strings.TrimSpace(req.Brand) == "" {
		fields = append(fields, e.FieldError{Field: "brand", Message: "brand is required"})
	}

	if len(fields) > 0 {
		return e.NewValidationError(fields...)
	}

	return nil
}
