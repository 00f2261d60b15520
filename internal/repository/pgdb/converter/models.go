package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID            string     `db:"id"`
	Name          string     `db:"name"`
	NameEn        string     `db:"name_en"`
	NameAr        string     `db:"name_ar"`
	Description   string     `db:"description"`
	DescriptionEn string     `db:"description_en"`
	DescriptionAr string     `db:"description_ar"`
	Price         int64      `db:"price"`
	ImageURL      string     `db:"image_url"`
	ImageURL2     *string    `db:"image_url2"`
	ImageURL3     *string    `db:"image_url3"`
	Stock         int32      `db:"stock"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     *time.Time `db:"updated_at"`
}

// OrderModel представляет запись таблицы orders в PostgreSQL.
type OrderModel struct {
	ID              string     `db:"id"`
	OrderNumber     string     `db:"order_number"`
	CustomerName    string     `db:"customer_name"`
	CustomerAddress string     `db:"customer_address"`
	CustomerPhone   string     `db:"customer_phone"`
	TotalPrice      int64      `db:"total_price"`
	Status          string     `db:"status"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       *time.Time `db:"updated_at"`
}

// OrderItemModel представляет запись таблицы order_items в PostgreSQL.
type OrderItemModel struct {
	ID                  string `db:"id"`
	OrderID             string `db:"order_id"`
	ProductID           string `db:"product_id"`
	Quantity            int32  `db:"quantity"`
	PriceAtTime         int64  `db:"price_at_time"`
	ProductNameSnapshot string `db:"product_name_snapshot"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	AggregateID string     `db:"aggregate_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
