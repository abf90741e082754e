package converter

import "github.com/DRSN-tech/resale-backend/internal/domain"

// ListingConverter преобразует объявления между domain и моделью Redis.
type ListingConverter interface {
	ToRedisModel(memberID string, listings []domain.Listing) *ListingsRedisModel
	ToDomain(model *ListingsRedisModel) []domain.Listing
}

type ListingConverterImpl struct{}

func NewListingConverterImpl() *ListingConverterImpl { return &ListingConverterImpl{} }

func (ListingConverterImpl) ToRedisModel(memberID string, listings []domain.Listing) *ListingsRedisModel {
	items := make([]ListingRedisModel, 0, len(listings))
	for _, l := range listings {
		items = append(items, ListingRedisModel{
			Title:    l.Title,
			Price:    l.Price,
			Size:     l.Size,
			Brand:    l.Brand,
			ImageURL: l.ImageURL,
		})
	}

	return &ListingsRedisModel{MemberID: memberID, Items: items}
}

func (ListingConverterImpl) ToDomain(model *ListingsRedisModel) []domain.Listing {
	out := make([]domain.Listing, 0, len(model.Items))
	for _, m := range model.Items {
		out = append(out, domain.NewListing(m.Title, m.Price, m.Size, m.Brand, m.ImageURL))
	}

	return out
}
