package converter

import (
	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/DRSN-tech/resale-backend/internal/usecase"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

// ArticleConverter преобразует сущности Article между domain и моделью PostgreSQL.
type ArticleConverter interface {
	ToModel(entity *domain.Article) *ArticleModel
	ToEntity(model *ArticleModel) (*domain.Article, error)
}

// SaleConverter преобразует сущности Sale между domain и моделью PostgreSQL.
type SaleConverter interface {
	ToModel(entity *domain.Sale) *SaleModel
	ToEntity(model *SaleModel) (*domain.Sale, error)
}

// ConversationConverter преобразует сущности Conversation между domain и моделью PostgreSQL.
type ConversationConverter interface {
	ToEntity(model *ConversationModel) *domain.Conversation
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

// StatsConverter разбирает строку агрегатов.
type StatsConverter interface {
	ToEntity(model *StatsModel) (*domain.StatsAggregate, error)
}

type ArticleConverterImpl struct{}

func NewArticleConverterImpl() *ArticleConverterImpl { return &ArticleConverterImpl{} }

func (ArticleConverterImpl) ToModel(entity *domain.Article) *ArticleModel {
	if entity == nil {
		return nil
	}

	return &ArticleModel{
		ID:                   entity.ID,
		Name:                 entity.Name,
		Brand:                entity.Brand,
		Size:                 entity.Size,
		Price:                entity.Price.StringFixed(2),
		PurchasePrice:        entity.PurchasePrice.StringFixed(2),
		Status:               string(entity.Status),
		ImageURL:             entity.ImageURL,
		Comment:              entity.Comment,
		GeneratedTitle:       entity.GeneratedTitle,
		GeneratedDescription: entity.GeneratedDescription,
		CreatedAt:            entity.CreatedAt,
		UpdatedAt:            entity.UpdatedAt,
	}
}

func (ArticleConverterImpl) ToEntity(model *ArticleModel) (*domain.Article, error) {
	if model == nil {
		return nil, nil
	}

	price, err := decimal.NewFromString(model.Price)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	purchase, err := decimal.NewFromString(model.PurchasePrice)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &domain.Article{
		ID:                   model.ID,
		Name:                 model.Name,
		Brand:                model.Brand,
		Size:                 model.Size,
		Price:                price,
		PurchasePrice:        purchase,
		Status:               domain.ArticleStatus(model.Status),
		ImageURL:             model.ImageURL,
		Comment:              model.Comment,
		GeneratedTitle:       model.GeneratedTitle,
		GeneratedDescription: model.GeneratedDescription,
		CreatedAt:            model.CreatedAt,
		UpdatedAt:            model.UpdatedAt,
	}, nil
}

type SaleConverterImpl struct{}

func NewSaleConverterImpl() *SaleConverterImpl { return &SaleConverterImpl{} }

func (SaleConverterImpl) ToModel(entity *domain.Sale) *SaleModel {
	if entity == nil {
		return nil
	}

	m := &SaleModel{
		ID:        entity.ID,
		ArticleID: entity.ArticleID,
		SalePrice: entity.SalePrice.StringFixed(2),
		SaleDate:  entity.SaleDate,
	}
	if entity.Coefficient != nil {
		c := entity.Coefficient.StringFixed(2)
		m.Coefficient = &c
	}

	return m
}

func (SaleConverterImpl) ToEntity(model *SaleModel) (*domain.Sale, error) {
	if model == nil {
		return nil, nil
	}

	price, err := decimal.NewFromString(model.SalePrice)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	s := &domain.Sale{
		ID:        model.ID,
		ArticleID: model.ArticleID,
		SalePrice: price,
		SaleDate:  model.SaleDate,
	}
	if model.Coefficient != nil {
		c, err := decimal.NewFromString(*model.Coefficient)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		s.Coefficient = &c
	}

	return s, nil
}

type ConversationConverterImpl struct{}

func NewConversationConverterImpl() *ConversationConverterImpl { return &ConversationConverterImpl{} }

func (ConversationConverterImpl) ToEntity(model *ConversationModel) *domain.Conversation {
	if model == nil {
		return nil
	}

	responses := model.GeneratedResponses
	if responses == nil {
		responses = []string{}
	}

	return &domain.Conversation{
		ID:                 model.ID,
		CustomerMessage:    model.CustomerMessage,
		GeneratedResponses: responses,
		CreatedAt:          model.CreatedAt,
	}
}

type OutboxEventConverterImpl struct{}

func NewOutboxEventConverterImpl() *OutboxEventConverterImpl { return &OutboxEventConverterImpl{} }

func (OutboxEventConverterImpl) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	if entity == nil {
		return nil
	}

	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		ArticleID:   entity.ArticleID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (OutboxEventConverterImpl) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	if model == nil {
		return nil
	}

	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		ArticleID:   model.ArticleID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c OutboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	out := make([]*usecase.OutboxEvent, 0, len(models))
	for _, m := range models {
		out = append(out, c.ToEntity(m))
	}

	return out
}

type StatsConverterImpl struct{}

func NewStatsConverterImpl() *StatsConverterImpl { return &StatsConverterImpl{} }

func (StatsConverterImpl) ToEntity(model *StatsModel) (*domain.StatsAggregate, error) {
	values := make([]decimal.Decimal, 5)
	for i, raw := range []string{
		model.MonthlyRevenue,
		model.MonthlyCost,
		model.TotalRevenue,
		model.TotalCost,
		model.AverageCoefficient,
	} {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		values[i] = d
	}

	return &domain.StatsAggregate{
		TotalArticles:      model.TotalArticles,
		TotalSold:          model.TotalSold,
		MonthlySold:        model.MonthlySold,
		MonthlyRevenue:     values[0],
		MonthlyCost:        values[1],
		TotalRevenue:       values[2],
		TotalCost:          values[3],
		AverageCoefficient: values[4],
	}, nil
}
