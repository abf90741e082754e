package pgdb

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ConversationRepo хранит сообщения покупателей и сгенерированные ответы.
type ConversationRepo struct {
	pool *pgxpool.Pool
	conv converter.ConversationConverter
}

func NewConversationRepo(pool *pgxpool.Pool, conv converter.ConversationConverter) *ConversationRepo {
	return &ConversationRepo{pool: pool, conv: conv}
}

func (c *ConversationRepo) Create(ctx context.Context, conversation *domain.Conversation) (*domain.Conversation, error) {
	query := `
		INSERT INTO conversations (customer_message)
		VALUES ($1)
		RETURNING id, customer_message, generated_responses, created_at
	`

	var m converter.ConversationModel
	if err := c.pool.QueryRow(ctx, query, conversation.CustomerMessage).
		Scan(&m.ID, &m.CustomerMessage, &m.GeneratedResponses, &m.CreatedAt); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&m), nil
}

// UpdateResponses сохраняет ответы как jsonb-массив строк.
func (c *ConversationRepo) UpdateResponses(ctx context.Context, id int64, responses []string) (*domain.Conversation, error) {
	query := `
		UPDATE conversations SET generated_responses = $2
		WHERE id = $1
		RETURNING id, customer_message, generated_responses, created_at
	`

	var m converter.ConversationModel
	if err := c.pool.QueryRow(ctx, query, id, responses).
		Scan(&m.ID, &m.CustomerMessage, &m.GeneratedResponses, &m.CreatedAt); err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%s: conversation %d not found: %w", whereami.WhereAmI(), id, err)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&m), nil
}

func (c *ConversationRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Conversation, error) {
	query := `
		SELECT id, customer_message, generated_responses, created_at
		FROM conversations
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := c.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]*domain.Conversation, 0, limit)
	for rows.Next() {
		var m converter.ConversationModel
		if err := rows.Scan(&m.ID, &m.CustomerMessage, &m.GeneratedResponses, &m.CreatedAt); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, c.conv.ToEntity(&m))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
