package converter

// ListingsRedisModel: закэшированный ответ площадки для одного продавца.
type ListingsRedisModel struct {
	MemberID string              `json:"member_id"`
	Items    []ListingRedisModel `json:"items"`
}

type ListingRedisModel struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	Size     string `json:"size"`
	Brand    string `json:"brand"`
	ImageURL string `json:"image_url"`
}
