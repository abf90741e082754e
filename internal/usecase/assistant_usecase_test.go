package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDescriptionReq() *GenerateDescriptionReq {
	return &GenerateDescriptionReq{
		Image: NewArticleImage([]byte{0xff, 0xd8, 0xff}, "image/jpeg", "photo.jpg"),
		Price: "25",
		Size:  "L",
		Brand: "Carhartt",
	}
}

func TestAssistantUseCase_GenerateDescription(t *testing.T) {
	t.Run("missing image is rejected before the AI call", func(t *testing.T) {
		gen := &mockGenerator{}
		uc := NewAssistantUC(gen, &mockArticleRepo{}, &mockConversationRepo{}, logger.Nop{})

		req := validDescriptionReq()
		req.Image = nil
		_, err := uc.GenerateDescription(context.Background(), req)
		require.ErrorIs(t, err, e.ErrValidation)
		assert.Zero(t, gen.Calls)
	})

	t.Run("unknown article is rejected before the AI call", func(t *testing.T) {
		gen := &mockGenerator{}
		articles := &mockArticleRepo{
			GetByIDFunc: func(context.Context, int64) (*domain.Article, error) { return nil, e.ErrArticleNotFound },
		}
		uc := NewAssistantUC(gen, articles, &mockConversationRepo{}, logger.Nop{})

		id := int64(42)
		req := validDescriptionReq()
		req.ArticleID = &id
		_, err := uc.GenerateDescription(context.Background(), req)
		require.ErrorIs(t, err, e.ErrArticleNotFound)
		assert.Zero(t, gen.Calls)
	})

	t.Run("stores generated text on the article", func(t *testing.T) {
		var stored *domain.GeneratedListing
		articles := &mockArticleRepo{
			GetByIDFunc: func(_ context.Context, id int64) (*domain.Article, error) { return &domain.Article{ID: id}, nil },
			SetGeneratedFunc: func(_ context.Context, id int64, l *domain.GeneratedListing) (*domain.Article, error) {
				stored = l
				return &domain.Article{ID: id}, nil
			},
		}
		gen := &mockGenerator{
			GenerateListingFunc: func(_ context.Context, p *ListingPrompt) (*domain.GeneratedListing, error) {
				assert.Equal(t, "image/jpeg", p.MimeType)
				assert.Equal(t, "Carhartt", p.Brand)
				return &domain.GeneratedListing{Title: "Veste Carhartt", Description: "Très bon état"}, nil
			},
		}
		uc := NewAssistantUC(gen, articles, &mockConversationRepo{}, logger.Nop{})

		id := int64(3)
		req := validDescriptionReq()
		req.ArticleID = &id
		got, err := uc.GenerateDescription(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "Veste Carhartt", got.Title)
		require.NotNil(t, stored)
		assert.Equal(t, "Très bon état", stored.Description)
	})

	t.Run("upstream error is propagated", func(t *testing.T) {
		gen := &mockGenerator{
			GenerateListingFunc: func(context.Context, *ListingPrompt) (*domain.GeneratedListing, error) {
				return nil, fmt.Errorf("gemini: %w", e.ErrUpstreamUnavailable)
			},
		}
		uc := NewAssistantUC(gen, &mockArticleRepo{}, &mockConversationRepo{}, logger.Nop{})

		_, err := uc.GenerateDescription(context.Background(), validDescriptionReq())
		require.ErrorIs(t, err, e.ErrUpstreamUnavailable)
		assert.Equal(t, 1, gen.Calls)
	})
}

func TestAssistantUseCase_GenerateResponses(t *testing.T) {
	replies := []domain.CustomerReply{
		{Tone: domain.ToneWarm, Text: "Bonjour ! Oui, toujours disponible."},
		{Tone: domain.TonePrecise, Text: "Disponible, taille M, envoi sous 48h."},
		{Tone: domain.ToneBrief, Text: "Oui, dispo."},
	}

	var savedID int64
	var saved []string
	convs := &mockConversationRepo{
		CreateFunc: func(_ context.Context, c *domain.Conversation) (*domain.Conversation, error) {
			assert.Equal(t, "Is it still available?", c.CustomerMessage)
			c.ID = 12
			return c, nil
		},
		UpdateResponsesFunc: func(_ context.Context, id int64, responses []string) (*domain.Conversation, error) {
			savedID, saved = id, responses
			return &domain.Conversation{ID: id, GeneratedResponses: responses}, nil
		},
	}
	gen := &mockGenerator{
		GenerateRepliesFunc: func(context.Context, string) ([]domain.CustomerReply, error) { return replies, nil },
	}
	uc := NewAssistantUC(gen, &mockArticleRepo{}, convs, logger.Nop{})

	got, err := uc.GenerateResponses(context.Background(), "  Is it still available? ")
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, int64(12), savedID)
	assert.Equal(t, domain.ReplyTexts(replies), saved)
}

func TestAssistantUseCase_GenerateResponses_EmptyMessage(t *testing.T) {
	gen := &mockGenerator{}
	uc := NewAssistantUC(gen, &mockArticleRepo{}, &mockConversationRepo{}, logger.Nop{})

	_, err := uc.GenerateResponses(context.Background(), "   ")
	require.ErrorIs(t, err, e.ErrValidation)
	assert.Zero(t, gen.Calls)
}

func TestAssistantUseCase_GenerateResponses_UpstreamFailure(t *testing.T) {
	updated := false
	convs := &mockConversationRepo{
		CreateFunc: func(_ context.Context, c *domain.Conversation) (*domain.Conversation, error) { return c, nil },
		UpdateResponsesFunc: func(context.Context, int64, []string) (*domain.Conversation, error) {
			updated = true
			return nil, nil
		},
	}
	gen := &mockGenerator{
		GenerateRepliesFunc: func(context.Context, string) ([]domain.CustomerReply, error) {
			return nil, errors.Join(e.ErrUpstreamUnavailable, errors.New("timeout"))
		},
	}
	uc := NewAssistantUC(gen, &mockArticleRepo{}, convs, logger.Nop{})

	_, err := uc.GenerateResponses(context.Background(), "hello")
	require.ErrorIs(t, err, e.ErrUpstreamUnavailable)
	assert.False(t, updated)
}

func TestAssistantUseCase_ListConversations_ClampsLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{in: 0, want: defaultConversationsLimit},
		{in: -3, want: defaultConversationsLimit},
		{in: 5, want: 5},
		{in: 1000, want: maxConversationsLimit},
	}

	for _, tt := range tests {
		var got int
		convs := &mockConversationRepo{
			ListRecentFunc: func(_ context.Context, limit int) ([]*domain.Conversation, error) {
				got = limit
				return nil, nil
			},
		}
		uc := NewAssistantUC(&mockGenerator{}, &mockArticleRepo{}, convs, logger.Nop{})

		_, err := uc.ListConversations(context.Background(), tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
