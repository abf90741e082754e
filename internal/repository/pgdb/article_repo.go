package pgdb

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/DRSN-tech/resale-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// articleColumns: общий список колонок; numeric приводится к text.
const articleColumns = `
	id, name, brand, size, price::text, purchase_price::text, status,
	image_url, comment, generated_title, generated_description, created_at, updated_at`

// ArticleRepo реализует репозиторий артикулов поверх PostgreSQL.
type ArticleRepo struct {
	pool *pgxpool.Pool
	conv converter.ArticleConverter
}

func NewArticleRepo(pool *pgxpool.Pool, conv converter.ArticleConverter) *ArticleRepo {
	return &ArticleRepo{pool: pool, conv: conv}
}

func scanArticle(row pgx.Row) (*converter.ArticleModel, error) {
	var m converter.ArticleModel
	err := row.Scan(
		&m.ID, &m.Name, &m.Brand, &m.Size, &m.Price, &m.PurchasePrice, &m.Status,
		&m.ImageURL, &m.Comment, &m.GeneratedTitle, &m.GeneratedDescription, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// one выполняет запрос, возвращающий ровно один артикул. pgx.ErrNoRows превращается в ErrArticleNotFound.
func (a *ArticleRepo) one(ctx context.Context, query string, args ...any) (*domain.Article, error) {
	q := tr.QuerierFromCtx(ctx, a.pool)

	model, err := scanArticle(q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, e.ErrArticleNotFound
		}
		return nil, err
	}

	return a.conv.ToEntity(model)
}

func (a *ArticleRepo) Create(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	model := a.conv.ToModel(article)
	query := `
		INSERT INTO articles (name, brand, size, price, purchase_price, status, image_url, comment)
		VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6, $7, $8)
		RETURNING ` + articleColumns

	created, err := a.one(ctx, query,
		model.Name, model.Brand, model.Size, model.Price, model.PurchasePrice,
		model.Status, model.ImageURL, model.Comment,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return created, nil
}

// CreateBatch вставляет артикулы одним батчем. Вызывается внутри транзакции.
func (a *ArticleRepo) CreateBatch(ctx context.Context, articles []*domain.Article) ([]*domain.Article, error) {
	if len(articles) == 0 {
		return []*domain.Article{}, nil
	}

	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO articles (name, brand, size, price, purchase_price, status, image_url, comment)
		VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6, $7, $8)
		RETURNING ` + articleColumns

	batch := &pgx.Batch{}
	for _, article := range articles {
		m := a.conv.ToModel(article)
		batch.Queue(query, m.Name, m.Brand, m.Size, m.Price, m.PurchasePrice, m.Status, m.ImageURL, m.Comment)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	created := make([]*domain.Article, 0, len(articles))
	for range articles {
		model, err := scanArticle(results.QueryRow())
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		entity, err := a.conv.ToEntity(model)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		created = append(created, entity)
	}

	return created, nil
}

func (a *ArticleRepo) List(ctx context.Context) ([]*domain.Article, error) {
	q := tr.QuerierFromCtx(ctx, a.pool)

	rows, err := q.Query(ctx, `SELECT `+articleColumns+` FROM articles ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]*domain.Article, 0)
	for rows.Next() {
		model, err := scanArticle(rows)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		entity, err := a.conv.ToEntity(model)
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

func (a *ArticleRepo) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	article, err := a.one(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return article, nil
}

// GetForUpdate читает артикул с блокировкой строки до конца текущей транзакции.
// Конкурентные смены статуса сериализуются: второй вызов увидит уже закоммиченный статус.
func (a *ArticleRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Article, error) {
	if _, err := tr.TxFromCtx(ctx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	article, err := a.one(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return article, nil
}

// Update применяет патч: nil-поля сохраняют текущее значение, updated_at обновляется всегда.
func (a *ArticleRepo) Update(ctx context.Context, id int64, patch *domain.ArticlePatch) (*domain.Article, error) {
	var price, purchase, status *string
	if patch.Price != nil {
		s := patch.Price.StringFixed(2)
		price = &s
	}
	if patch.PurchasePrice != nil {
		s := patch.PurchasePrice.StringFixed(2)
		purchase = &s
	}
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}

	query := `
		UPDATE articles SET
			name           = COALESCE($2, name),
			brand          = COALESCE($3, brand),
			size           = COALESCE($4, size),
			price          = COALESCE($5::numeric, price),
			purchase_price = COALESCE($6::numeric, purchase_price),
			status         = COALESCE($7, status),
			comment        = COALESCE($8, comment),
			image_url      = COALESCE($9, image_url),
			updated_at     = now()
		WHERE id = $1
		RETURNING ` + articleColumns

	article, err := a.one(ctx, query,
		id, patch.Name, patch.Brand, patch.Size, price, purchase, status, patch.Comment, patch.ImageURL,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return article, nil
}

// MarkSold меняет только статус и updated_at.
func (a *ArticleRepo) MarkSold(ctx context.Context, id int64) (*domain.Article, error) {
	query := `
		UPDATE articles SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + articleColumns

	article, err := a.one(ctx, query, id, string(domain.StatusSold))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return article, nil
}

func (a *ArticleRepo) SetGenerated(ctx context.Context, id int64, listing *domain.GeneratedListing) (*domain.Article, error) {
	query := `
		UPDATE articles SET generated_title = $2, generated_description = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + articleColumns

	article, err := a.one(ctx, query, id, listing.Title, listing.Description)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return article, nil
}

func (a *ArticleRepo) Delete(ctx context.Context, id int64) (*string, error) {
	q := tr.QuerierFromCtx(ctx, a.pool)

	var imageURL *string
	err := q.QueryRow(ctx, `DELETE FROM articles WHERE id = $1 RETURNING image_url`, id).Scan(&imageURL)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%s: %w", whereami.WhereAmI(), e.ErrArticleNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return imageURL, nil
}
