package pgdb

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/DRSN-tech/resale-backend/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// SaleRepo реализует журнал продаж поверх PostgreSQL.
type SaleRepo struct {
	pool *pgxpool.Pool
	conv converter.SaleConverter
}

func NewSaleRepo(pool *pgxpool.Pool, conv converter.SaleConverter) *SaleRepo {
	return &SaleRepo{pool: pool, conv: conv}
}

func (s *SaleRepo) Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	q := tr.QuerierFromCtx(ctx, s.pool)

	model := s.conv.ToModel(sale)
	query := `
		INSERT INTO sales (article_id, sale_price, coefficient)
		VALUES ($1, $2::numeric, $3::numeric)
		RETURNING id, article_id, sale_price::text, sale_date, coefficient::text
	`

	var out converter.SaleModel
	err := q.QueryRow(ctx, query, model.ArticleID, model.SalePrice, model.Coefficient).
		Scan(&out.ID, &out.ArticleID, &out.SalePrice, &out.SaleDate, &out.Coefficient)
	if err != nil {
		if postgresForeignKey(err) {
			return nil, fmt.Errorf("%s: %w", whereami.WhereAmI(), e.ErrArticleNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	entity, err := s.conv.ToEntity(&out)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return entity, nil
}

func (s *SaleRepo) List(ctx context.Context) ([]*domain.Sale, error) {
	query := `
		SELECT id, article_id, sale_price::text, sale_date, coefficient::text
		FROM sales
		ORDER BY sale_date DESC, id DESC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]*domain.Sale, 0)
	for rows.Next() {
		var m converter.SaleModel
		if err := rows.Scan(&m.ID, &m.ArticleID, &m.SalePrice, &m.SaleDate, &m.Coefficient); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		entity, err := s.conv.ToEntity(&m)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
