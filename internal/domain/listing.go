package domain

const (
	DefaultListingSize  = "unique size"
	DefaultListingBrand = "brand unknown"
)

// Listing: нормализованное объявление с внешней площадки.
// Price: десятичная строка с точкой и двумя знаками после неё.
type Listing struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	Size     string `json:"size"`
	Brand    string `json:"brand"`
	ImageURL string `json:"imageUrl"`
}

func NewListing(title, price, size, brand, imageURL string) Listing {
	if size == "" {
		size = DefaultListingSize
	}
	if brand == "" {
		brand = DefaultListingBrand
	}

	return Listing{
		Title:    title,
		Price:    price,
		Size:     size,
		Brand:    brand,
		ImageURL: imageURL,
	}
}
