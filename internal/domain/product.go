package domain

import "time"

// Product описывает товар каталога.
// Локализованные варианты названия и описания (en/ar) заполняются
// сервисом перевода и могут быть пустыми, если перевод недоступен.
type Product struct {
	ID            string
	Name          string
	NameEn        string
	NameAr        string
	Description   string
	DescriptionEn string
	DescriptionAr string
	Price         int64 // Цена хранится в миллимах (1 TND = 1000 миллимов)
	ImageURL      string
	ImageURL2     *string
	ImageURL3     *string
	Stock         int32
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

func NewProduct(id string, name string, description string, price int64, imageURL string, stock int32) *Product {
	return &Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
		Stock:       stock,
	}
}
