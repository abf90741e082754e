package converter

import "time"

// ArticleModel представляет запись таблицы articles в PostgreSQL.
// Денежные поля читаются как text, чтобы не терять точность numeric.
type ArticleModel struct {
	ID                   int64     `db:"id"`
	Name                 string    `db:"name"`
	Brand                string    `db:"brand"`
	Size                 string    `db:"size"`
	Price                string    `db:"price"`
	PurchasePrice        string    `db:"purchase_price"`
	Status               string    `db:"status"`
	ImageURL             *string   `db:"image_url"`
	Comment              *string   `db:"comment"`
	GeneratedTitle       *string   `db:"generated_title"`
	GeneratedDescription *string   `db:"generated_description"`
	CreatedAt            time.Time `db:"created_at"`
	UpdatedAt            time.Time `db:"updated_at"`
}

// SaleModel представляет запись таблицы sales в PostgreSQL.
type SaleModel struct {
	ID          int64     `db:"id"`
	ArticleID   int64     `db:"article_id"`
	SalePrice   string    `db:"sale_price"`
	SaleDate    time.Time `db:"sale_date"`
	Coefficient *string   `db:"coefficient"`
}

// ConversationModel представляет запись таблицы conversations в PostgreSQL.
type ConversationModel struct {
	ID                 int64     `db:"id"`
	CustomerMessage    string    `db:"customer_message"`
	GeneratedResponses []string  `db:"generated_responses"`
	CreatedAt          time.Time `db:"created_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	ArticleID   *int64     `db:"article_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}

// StatsModel: строка агрегирующего запроса дашборда.
type StatsModel struct {
	TotalArticles      int64
	TotalSold          int64
	MonthlySold        int64
	MonthlyRevenue     string
	MonthlyCost        string
	TotalRevenue       string
	TotalCost          string
	AverageCoefficient string
}
