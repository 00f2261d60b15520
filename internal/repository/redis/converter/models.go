package converter

import "time"

// ProductRedisModel — JSON-представление товара в кэше.
type ProductRedisModel struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	NameEn        string     `json:"name_en"`
	NameAr        string     `json:"name_ar"`
	Description   string     `json:"description"`
	DescriptionEn string     `json:"description_en"`
	DescriptionAr string     `json:"description_ar"`
	Price         int64      `json:"price"`
	ImageURL      string     `json:"image_url"`
	ImageURL2     *string    `json:"image_url2,omitempty"`
	ImageURL3     *string    `json:"image_url3,omitempty"`
	Stock         int32      `json:"stock"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}
